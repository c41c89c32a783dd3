package booking

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequiredFields(t *testing.T) {
	base := []string{
		FieldServiceID,
		FieldScheduledDate,
		FieldScheduledTime,
		FieldServiceAddressText,
		FieldVehicleType,
		FieldBasePrice,
	}

	t.Run("customer books for themselves", func(t *testing.T) {
		got := RequiredFields(RoleCustomer)
		assert.Equal(t, base, got)
		assert.NotContains(t, got, FieldCustomerID)
	})

	t.Run("admin and worker must name the customer", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleWorker} {
			got := RequiredFields(role)
			assert.Equal(t, FieldCustomerID, got[0], "customer_id must lead for %s", role)
			assert.Len(t, got, len(base)+1)
		}
	})
}

func TestValidateField(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("required fields reject empty values", func(t *testing.T) {
		for _, field := range []string{
			FieldCustomerID, FieldServiceID, FieldScheduledDate,
			FieldScheduledTime, FieldServiceAddressText, FieldVehicleType, FieldBasePrice,
		} {
			assert.NotEmpty(t, ValidateField(field, "", RoleAdmin, now), "field %s should require a value", field)
			assert.NotEmpty(t, ValidateField(field, "   ", RoleAdmin, now), "field %s should reject whitespace", field)
		}
	})

	t.Run("scheduled date accepts today", func(t *testing.T) {
		assert.Empty(t, ValidateField(FieldScheduledDate, "2026-08-31", RoleCustomer, now))
	})

	t.Run("scheduled date accepts tomorrow", func(t *testing.T) {
		assert.Empty(t, ValidateField(FieldScheduledDate, "2026-09-01", RoleCustomer, now))
	})

	t.Run("scheduled date rejects yesterday", func(t *testing.T) {
		msg := ValidateField(FieldScheduledDate, "2026-08-30", RoleCustomer, now)
		assert.Equal(t, "Scheduled date cannot be in the past", msg)
	})

	t.Run("scheduled date rejects garbage", func(t *testing.T) {
		assert.Equal(t, "Scheduled date must be a valid date", ValidateField(FieldScheduledDate, "next tuesday", RoleCustomer, now))
	})

	t.Run("address length", func(t *testing.T) {
		assert.NotEmpty(t, ValidateField(FieldServiceAddressText, "short", RoleCustomer, now))
		assert.Empty(t, ValidateField(FieldServiceAddressText, "12 Example Street", RoleCustomer, now))
	})

	t.Run("base price must be a positive number", func(t *testing.T) {
		assert.Empty(t, ValidateField(FieldBasePrice, "99.50", RoleCustomer, now))
		assert.Equal(t, "Base price must be a number", ValidateField(FieldBasePrice, "free", RoleCustomer, now))
		assert.Equal(t, "Base price must be greater than zero", ValidateField(FieldBasePrice, "0", RoleCustomer, now))
		assert.Equal(t, "Base price must be greater than zero", ValidateField(FieldBasePrice, "-10", RoleCustomer, now))
	})

	t.Run("estimated duration is optional but bounded", func(t *testing.T) {
		assert.Empty(t, ValidateField(FieldEstimatedDuration, "", RoleCustomer, now))
		assert.Empty(t, ValidateField(FieldEstimatedDuration, "15", RoleCustomer, now))
		assert.Empty(t, ValidateField(FieldEstimatedDuration, "90", RoleCustomer, now))
		assert.NotEmpty(t, ValidateField(FieldEstimatedDuration, "10", RoleCustomer, now))
		assert.NotEmpty(t, ValidateField(FieldEstimatedDuration, "soon", RoleCustomer, now))
	})

	t.Run("vehicle year is optional but bounded", func(t *testing.T) {
		maxYear := now.Year() + 1
		assert.Empty(t, ValidateField(FieldVehicleYear, "", RoleCustomer, now))
		assert.Empty(t, ValidateField(FieldVehicleYear, "1990", RoleCustomer, now))
		assert.Empty(t, ValidateField(FieldVehicleYear, fmt.Sprintf("%d", maxYear), RoleCustomer, now))
		assert.NotEmpty(t, ValidateField(FieldVehicleYear, "1989", RoleCustomer, now))
		assert.NotEmpty(t, ValidateField(FieldVehicleYear, fmt.Sprintf("%d", maxYear+1), RoleCustomer, now))
		assert.NotEmpty(t, ValidateField(FieldVehicleYear, "classic", RoleCustomer, now))
	})

	t.Run("charges and discount are optional but non-negative", func(t *testing.T) {
		for _, field := range []string{FieldAdditionalCharges, FieldDiscountAmount} {
			assert.Empty(t, ValidateField(field, "", RoleCustomer, now))
			assert.Empty(t, ValidateField(field, "0", RoleCustomer, now))
			assert.Empty(t, ValidateField(field, "12.50", RoleCustomer, now))
			assert.NotEmpty(t, ValidateField(field, "-1", RoleCustomer, now), "field %s should reject negatives", field)
			assert.NotEmpty(t, ValidateField(field, "lots", RoleCustomer, now), "field %s should reject non-numerics", field)
		}
	})

	t.Run("unknown fields pass", func(t *testing.T) {
		assert.Empty(t, ValidateField("favorite_color", "teal", RoleCustomer, now))
	})
}
