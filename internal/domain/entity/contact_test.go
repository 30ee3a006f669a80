package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContact_HasBirthdayOn(t *testing.T) {
	bday := time.Date(1988, 10, 22, 0, 0, 0, 0, time.UTC)
	c := Contact{UserID: 1, Name: "Mária", BirthdayDate: &bday}

	// Year is ignored: the 1988 birthday matches any Oct 22.
	assert.True(t, c.HasBirthdayOn(time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.HasBirthdayOn(time.Date(2024, 10, 23, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.HasBirthdayOn(time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC)))
}

func TestContact_HasNameDayOn(t *testing.T) {
	nameDay := time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC)
	c := Contact{UserID: 1, Name: "Svetlana", NameDayDate: &nameDay}

	assert.True(t, c.HasNameDayOn(time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC)))
	assert.False(t, c.HasNameDayOn(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestContact_NilDates(t *testing.T) {
	c := Contact{UserID: 1, Name: "Bez dátumov"}
	today := time.Now()

	assert.False(t, c.HasBirthdayOn(today))
	assert.False(t, c.HasNameDayOn(today))
}

func TestContact_Validate(t *testing.T) {
	c := Contact{UserID: 1, Name: "Jana"}
	assert.NoError(t, c.Validate())

	c = Contact{Name: "Orphan"}
	assert.Error(t, c.Validate())

	c = Contact{UserID: 1}
	assert.Error(t, c.Validate())
}
