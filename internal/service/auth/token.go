package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// claims полезная нагрузка JWT; subject - ID пользователя или контролера
type claims struct {
	Name string `json:"nombre"`
	Role string `json:"rol"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(p domain.Principal) (string, error) {
	now := s.timeProvider.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: p.Name,
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", ErrInternal, err)
	}

	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает субъекта
func (s *Service) ParseToken(raw string) (domain.Principal, error) {
	var c claims

	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Principal{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}

	role := domain.Role(c.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleOperator, domain.RoleController:
	default:
		return domain.Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, c.Role)
	}

	return domain.Principal{ID: id, Name: c.Name, Role: role}, nil
}
