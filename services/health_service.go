package services

import (
	"coachpoint_go/config"
	"coachpoint_go/database"
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

const (
	overallStatusOK       = "ok"
	overallStatusDegraded = "degraded"
	overallStatusCritical = "critical"

	dependencyStatusUp       = "up"
	dependencyStatusDown     = "down"
	dependencyStatusDisabled = "disabled"

	defaultServiceName = "CoachPoint API"
	defaultVersion     = "1.0.0"
	defaultTimeout     = 1500 * time.Millisecond
)

// HealthService probes the database and Redis and assembles the report
// served by the health endpoints.
type HealthService struct {
	serviceName string
	version     string
	startTime   time.Time
	timeout     time.Duration
}

// HealthReport is the JSON body of GET /health.
type HealthReport struct {
	Status        string             `json:"status"`
	Service       string             `json:"service"`
	Version       string             `json:"version"`
	Environment   string             `json:"environment"`
	Time          time.Time          `json:"time"`
	UptimeSeconds float64            `json:"uptime_seconds"`
	UptimeHuman   string             `json:"uptime_human"`
	Dependencies  []DependencyStatus `json:"dependencies"`
	Metrics       HealthMetrics      `json:"metrics"`
	Flags         HealthFlags        `json:"flags"`
	System        HealthSystem       `json:"system"`
}

// DependencyStatus is the probe result for one external dependency.
type DependencyStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// HealthMetrics carries runtime numbers for diagnostics.
type HealthMetrics struct {
	Goroutines     int            `json:"goroutines"`
	HeapAllocBytes uint64         `json:"heap_alloc_bytes"`
	SysBytes       uint64         `json:"sys_bytes"`
	Database       *DatabaseStats `json:"database,omitempty"`
}

// DatabaseStats is a snapshot of the SQL connection pool.
type DatabaseStats struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

// HealthFlags exposes the feature toggles that change runtime behaviour.
type HealthFlags struct {
	SkipMigrate            bool `json:"skip_migrate"`
	UseRedisNotifications  bool `json:"use_redis_notifications"`
	EnableSessionReminders bool `json:"enable_session_reminders"`
}

// HealthSystem identifies the build environment.
type HealthSystem struct {
	GoVersion string `json:"go_version"`
	GoOS      string `json:"go_os"`
	GoArch    string `json:"go_arch"`
}

func NewHealthService(serviceName, version string) *HealthService {
	if strings.TrimSpace(serviceName) == "" {
		serviceName = defaultServiceName
	}
	if strings.TrimSpace(version) == "" {
		version = defaultVersion
	}
	return &HealthService{
		serviceName: serviceName,
		version:     version,
		startTime:   time.Now(),
		timeout:     defaultTimeout,
	}
}

// GetHealthReport probes every dependency and combines the results.
func (s *HealthService) GetHealthReport() HealthReport {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	uptime := time.Since(s.startTime)
	if uptime < 0 {
		uptime = 0
	}

	report := HealthReport{
		Status:        overallStatusOK,
		Service:       s.serviceName,
		Version:       s.version,
		Environment:   currentEnvironment(),
		Time:          time.Now().UTC(),
		UptimeSeconds: uptime.Seconds(),
		UptimeHuman:   humanizeDuration(uptime),
	}

	dbDep, dbStats, dbStatus := checkDatabase(ctx)
	report.Dependencies = append(report.Dependencies, dbDep)
	report.Status = combineStatus(report.Status, dbStatus)

	redisDep, redisStatus := checkRedis(ctx)
	report.Dependencies = append(report.Dependencies, redisDep)
	report.Status = combineStatus(report.Status, redisStatus)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	report.Metrics = HealthMetrics{
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		SysBytes:       mem.Sys,
		Database:       dbStats,
	}
	report.Flags = collectFlags()
	report.System = HealthSystem{
		GoVersion: runtime.Version(),
		GoOS:      runtime.GOOS,
		GoArch:    runtime.GOARCH,
	}

	return report
}

// HTTPStatusForOverall maps a health status to an HTTP status code.
// Only a critical status flips the endpoint to 503; degraded still
// answers 200 so load balancers keep routing.
func (s *HealthService) HTTPStatusForOverall(status string) int {
	if status == overallStatusCritical {
		return 503
	}
	return 200
}

func checkDatabase(ctx context.Context) (DependencyStatus, *DatabaseStats, string) {
	dep := DependencyStatus{Name: "mysql"}

	if database.DB == nil {
		dep.Status = dependencyStatusDown
		dep.Error = "database connection not initialised"
		return dep, nil, overallStatusCritical
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = fmt.Sprintf("sql DB handle error: %v", err)
		return dep, nil, overallStatusCritical
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	start := time.Now()
	err = sqlDB.PingContext(pingCtx)
	cancel()
	dep.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
		return dep, nil, overallStatusCritical
	}

	dep.Status = dependencyStatusUp
	pool := sqlDB.Stats()
	return dep, &DatabaseStats{
		OpenConnections: pool.OpenConnections,
		InUse:           pool.InUse,
		Idle:            pool.Idle,
	}, overallStatusOK
}

// Redis failure never takes the service down: the notification queue and
// the log buffer both fall back to direct DB writes.
func checkRedis(ctx context.Context) (DependencyStatus, string) {
	dep := DependencyStatus{Name: "redis"}
	required := config.AppConfig != nil && config.AppConfig.UseRedisNotifications

	client := database.GetRedisClient()
	if client == nil {
		if !required {
			dep.Status = dependencyStatusDisabled
			return dep, overallStatusOK
		}
		dep.Status = dependencyStatusDown
		dep.Error = "redis client not initialised"
		return dep, overallStatusDegraded
	}

	pingCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	start := time.Now()
	err := client.Ping(pingCtx).Err()
	cancel()
	dep.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
		if required {
			return dep, overallStatusDegraded
		}
		return dep, overallStatusOK
	}

	dep.Status = dependencyStatusUp
	dep.Detail = client.Options().Addr
	return dep, overallStatusOK
}

func collectFlags() HealthFlags {
	if config.AppConfig == nil {
		return HealthFlags{}
	}
	return HealthFlags{
		SkipMigrate:            config.AppConfig.SkipMigrate,
		UseRedisNotifications:  config.AppConfig.UseRedisNotifications,
		EnableSessionReminders: config.AppConfig.EnableSessionReminders,
	}
}

func currentEnvironment() string {
	if config.AppConfig == nil {
		return "unknown"
	}
	if env := strings.TrimSpace(config.AppConfig.AppEnv); env != "" {
		return env
	}
	return "unknown"
}

func combineStatus(current, candidate string) string {
	order := map[string]int{
		overallStatusOK:       0,
		overallStatusDegraded: 1,
		overallStatusCritical: 2,
	}
	if _, ok := order[current]; !ok {
		current = overallStatusOK
	}
	if v, ok := order[candidate]; ok && v > order[current] {
		return candidate
	}
	return current
}

func humanizeDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d %= 24 * time.Hour
	hours := d / time.Hour
	d %= time.Hour
	minutes := d / time.Minute
	seconds := d % time.Minute / time.Second

	parts := []string{}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}
