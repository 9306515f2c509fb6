package dbhelper

import (
	"database/sql"
	"time"

	"github.com/konaseemakart/backend/database"
)

// UpsertOTP stores the code for the phone, overwriting any previous code and
// its timestamp. One live OTP per phone.
func UpsertOTP(phone, otp string) error {
	_, err := database.Kart.Exec(`
		INSERT INTO pending_logins (phone, otp, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (phone)
		DO UPDATE SET otp = $2, created_at = NOW()`, phone, otp)
	return err
}

// ConsumeOTP verifies the submitted code against the stored row. On match the
// row is deleted, so a replayed code cannot verify twice. A mismatch leaves
// the row intact for retry. Rows older than ttl are deleted and reported
// expired; ttl <= 0 disables the check.
func ConsumeOTP(phone, otp string, ttl time.Duration) error {
	var stored string
	var createdAt time.Time
	err := database.Kart.QueryRow(`SELECT otp, created_at FROM pending_logins WHERE phone = $1`, phone).
		Scan(&stored, &createdAt)
	if err == sql.ErrNoRows {
		return ErrNoPendingOTP
	}
	if err != nil {
		return err
	}

	if ttl > 0 && time.Since(createdAt) > ttl {
		if _, err := database.Kart.Exec(`DELETE FROM pending_logins WHERE phone = $1`, phone); err != nil {
			return err
		}
		return ErrOTPExpired
	}

	if stored != otp {
		return ErrIncorrectOTP
	}

	_, err = database.Kart.Exec(`DELETE FROM pending_logins WHERE phone = $1 AND otp = $2`, phone, otp)
	return err
}
