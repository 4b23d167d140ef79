package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewReference генерирует номер брони вида BK-1A2B3C4D5E6F
// Уникальность гарантируется unique-индексом в БД
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ReferencePrefix + "-" + strings.ToUpper(id[:12])
}
