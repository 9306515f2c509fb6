package utils

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/konaseemakart/backend/config"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// GenerateOTP returns a 6-digit code in [100000, 999999]. Delivery is
// out-of-band and the code is short-lived, so math/rand is the contract here.
func GenerateOTP() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// GenerateAccessToken issues the post-login token with the verified phone
// number as subject.
func GenerateAccessToken(phone string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   phone,
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.SecretKey)
}

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("failed to write response body")
	}
}

func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}
