package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const ticketTTL = 5 * time.Minute

// TicketService issues short-lived tokens that authorize exactly one
// websocket connection to exactly one room. The browser cannot set an
// Authorization header on a websocket handshake, so the ticket travels as
// a query parameter instead and expires quickly.
type TicketService struct {
	jwtSecret []byte
}

func NewTicketService(jwtSecret string) *TicketService {
	return &TicketService{jwtSecret: []byte(jwtSecret)}
}

func (s *TicketService) Issue(userID uint, roomCode string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"room_code": roomCode,
		"scope":     "ws",
		"exp":       time.Now().Add(ticketTTL).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Validate checks the ticket signature and binds it to the room the caller
// is trying to enter. A ticket for room A never opens room B.
func (s *TicketService) Validate(ticket, roomCode string) (uint, error) {
	token, err := jwt.Parse(ticket, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid ticket")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	if scope, _ := claims["scope"].(string); scope != "ws" {
		return 0, errors.New("invalid ticket scope")
	}
	if code, _ := claims["room_code"].(string); code != roomCode {
		return 0, errors.New("ticket issued for another room")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid user_id in ticket")
	}
	return uint(userIDFloat), nil
}
