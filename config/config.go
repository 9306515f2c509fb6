package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	SecretKey       []byte
	Port            string
	AllowedOrigins  []string
	Fast2SMSBaseURL string
	Fast2SMSAuth    string
	OTPTTL          time.Duration
	MaxBodyBytes    int64
)

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)

	Port = envOr("PORT", "3000")
	Fast2SMSBaseURL = os.Getenv("FAST2SMS_BASE_URL")
	Fast2SMSAuth = os.Getenv("FAST2SMS_AUTHORIZATION")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			AllowedOrigins = append(AllowedOrigins, strings.TrimSpace(o))
		}
	} else {
		AllowedOrigins = []string{"http://localhost:5173", "https://www.konaseemakart.in"}
	}

	OTPTTL = time.Duration(envInt("OTP_TTL_MINUTES", 10)) * time.Minute
	MaxBodyBytes = int64(envInt("MAX_BODY_BYTES", 10<<20))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}
