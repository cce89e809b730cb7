package controllers

import (
	"coachpoint_go/config"
	"coachpoint_go/middleware"
	"coachpoint_go/services/websocket"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
)

type WebSocketController struct {
	hub *websocket.Hub
}

func NewWebSocketController(hub *websocket.Hub) *WebSocketController {
	return &WebSocketController{hub: hub}
}

// validateJWT parses and validates a token passed via query parameter.
// Browsers cannot set Authorization headers on WebSocket upgrades.
func validateJWT(tokenString string) (*middleware.Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &middleware.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*middleware.Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// UpgradeMiddleware rejects plain HTTP requests on the WebSocket route
func (wsc *WebSocketController) UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// WebSocketHandler authenticates the upgrade via the token query parameter
// and hands the connection to the hub
func (wsc *WebSocketController) WebSocketHandler() fiber.Handler {
	return fiberws.New(func(c *fiberws.Conn) {
		claims, err := validateJWT(c.Query("token"))
		if err != nil {
			c.WriteMessage(fiberws.CloseMessage,
				fiberws.FormatCloseMessage(fiberws.ClosePolicyViolation, "unauthorized"))
			c.Close()
			return
		}

		wsc.hub.ServeFiberWS(c, claims.UserID)
	})
}

// GetWebSocketStats returns connection statistics (admin only)
func (wsc *WebSocketController) GetWebSocketStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"connected_clients": wsc.hub.GetClientCount(),
	})
}
