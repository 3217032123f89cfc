package daily

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/disgoorg/snowflake/v2"
	models "github.com/glkeru/loyalty/daily/internal/models"
)

var (
	identityRe    = regexp.MustCompile(`^[0-9]{17,20}$`)
	displayNameRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{2,32}$`)
)

// Discord ID: 17-20 цифр, хранится как Int64
func ParseIdentity(identity string) (int64, error) {
	if !identityRe.MatchString(identity) {
		return 0, models.NewClaimError(models.InvalidIdentity, "Invalid Discord ID! Must be 17-20 digits.")
	}
	id, err := snowflake.Parse(identity)
	if err != nil || id == 0 || uint64(id) > math.MaxInt64 {
		return 0, models.NewClaimError(models.InvalidIdentity, "Invalid Discord ID! Value is out of range.")
	}
	return int64(id), nil
}

// Пустое имя допустимо
func ValidateDisplayName(name string) error {
	if name == "" {
		return nil
	}
	if !displayNameRe.MatchString(name) {
		return models.NewClaimError(models.InvalidDisplayName, "Invalid username! Use 2-32 letters, digits, '_', '.' or '-'.")
	}
	return nil
}

// Оставшееся время в формате "23h 59m"
func FormatTimeLeft(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
