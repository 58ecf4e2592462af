package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentOverdue(t *testing.T) {
	today := NewDate(2026, time.March, 15)
	yesterday := NewDate(2026, time.March, 14)
	tomorrow := NewDate(2026, time.March, 16)

	tests := []struct {
		name    string
		dueDate *Date
		balance float64
		want    bool
	}{
		{"past due with balance", &yesterday, 50, true},
		{"past due fully paid", &yesterday, 0, false},
		{"due today with balance", &today, 50, false},
		{"due tomorrow with balance", &tomorrow, 50, false},
		{"no due date with balance", nil, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payment{DueDate: tt.dueDate, Balance: tt.balance}
			assert.Equal(t, tt.want, p.Overdue(today))
		})
	}
}

func TestPrincipalFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", (&Principal{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}).FullName())
	assert.Equal(t, "Doe", (&Principal{Username: "jdoe", LastName: "Doe"}).FullName())
	assert.Equal(t, "jdoe", (&Principal{Username: "jdoe"}).FullName())
}
