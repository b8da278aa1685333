package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

var bgContext = context.Background()

// OTPTTL is how long a registration OTP stays valid.
const OTPTTL = 10 * time.Minute

func InitializeRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})
}

// SetOTP stores the code for an email, replacing any previous code. The key
// expires on its own, which is what retires stale OTPs.
func SetOTP(email, code string) error {
	return Redis.Set(bgContext, "otp:"+email, code, OTPTTL).Err()
}

// GetOTP returns the stored code, or "" when none exists or it expired.
func GetOTP(email string) string {
	code, err := Redis.Get(bgContext, "otp:"+email).Result()
	if err != nil {
		return ""
	}
	return code
}

// DeleteOTP removes a consumed code so it cannot be replayed.
func DeleteOTP(email string) {
	Redis.Del(bgContext, "otp:"+email)
}
