package apitest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

var (
	errUsernameTaken = errors.New("username already registered")
	errEmailTaken    = errors.New("email already registered")
)

type contextKey string

const userIDKey contextKey = "userID"

type claims struct {
	jwt.RegisteredClaims
	Generation int `json:"gen"`
}

// signToken вызывается под s.mu
func (s *Server) signToken(userID int, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Generation: s.generation,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

func (s *Server) validateToken(tokenStr string) (int, error) {
	var c claims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&c,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("невалидный токен: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Generation != s.generation {
		return 0, errors.New("токен отозван")
	}

	userID, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("невалидный subject: %w", err)
	}
	if _, ok := s.accountByID(userID); !ok {
		return 0, errors.New("пользователь не найден")
	}

	return userID, nil
}

// authenticate пропускает запрос дальше только с действующим bearer-токеном
func (s *Server) authenticate(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || token == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := s.validateToken(token)
		if err != nil {
			s.log.Debug("токен отклонен", slog.String("error", err.Error()))
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		newCtx := context.WithValue(ctx.Context(), userIDKey, userID)
		next(huma.WithContext(ctx, newCtx))
	}
}

func currentUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}
