package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateQuoteRef creates a human-facing quote reference.
// Format: QT-YYYYMMDD-HHMMSS-RANDOM
func GenerateQuoteRef() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("QT-%s-%s-%s", datePart, timePart, randomPart)
}
