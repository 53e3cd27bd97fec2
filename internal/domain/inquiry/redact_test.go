package inquiry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func sample(assignedTo *string) CustomerInquiry {
	return CustomerInquiry{
		ID:            "inq_1",
		CustomerName:  "Zhang Wei",
		CustomerEmail: "abcdef@example.com",
		CustomerPhone: "13812345678",
		Status:        StatusAssigned,
		AssignedTo:    assignedTo,
	}
}

func TestRedactMasksForOtherUsers(t *testing.T) {
	in := sample(strPtr("user_a"))
	out := Redact(in, Viewer{UserID: "user_b"})

	assert.Equal(t, "ab***@example.com", out.CustomerEmail)
	assert.Equal(t, "138****5678", out.CustomerPhone)

	// input untouched
	assert.Equal(t, "abcdef@example.com", in.CustomerEmail)
	assert.Equal(t, "13812345678", in.CustomerPhone)
}

func TestRedactSkipsOwner(t *testing.T) {
	out := Redact(sample(strPtr("user_a")), Viewer{UserID: "user_a"})
	assert.Equal(t, "abcdef@example.com", out.CustomerEmail)
	assert.Equal(t, "13812345678", out.CustomerPhone)
}

func TestRedactSkipsAdmin(t *testing.T) {
	out := Redact(sample(strPtr("user_a")), Viewer{UserID: "user_b", Admin: true})
	assert.Equal(t, "abcdef@example.com", out.CustomerEmail)
	assert.Equal(t, "13812345678", out.CustomerPhone)
}

func TestRedactSkipsUnassigned(t *testing.T) {
	out := Redact(sample(nil), Viewer{UserID: "user_b"})
	assert.Equal(t, "abcdef@example.com", out.CustomerEmail)
	assert.Equal(t, "13812345678", out.CustomerPhone)
}

func TestRedactPassesThroughUnmatchedFormats(t *testing.T) {
	in := sample(strPtr("user_a"))
	in.CustomerEmail = "a@b.c" // local part shorter than mask prefix
	in.CustomerPhone = "555-1234"
	out := Redact(in, Viewer{UserID: "user_b"})

	assert.Equal(t, "a@b.c", out.CustomerEmail)
	assert.Equal(t, "555-1234", out.CustomerPhone)
}

func TestRedactAll(t *testing.T) {
	items := []CustomerInquiry{sample(strPtr("user_a")), sample(nil)}
	out := RedactAll(items, Viewer{UserID: "user_b"})

	assert.Equal(t, "ab***@example.com", out[0].CustomerEmail)
	assert.Equal(t, "abcdef@example.com", out[1].CustomerEmail)
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("archived").Valid())

	assert.True(t, StatusAssigned.AdvanceTarget())
	assert.True(t, StatusQuoted.AdvanceTarget())
	assert.True(t, StatusCompleted.AdvanceTarget())
	assert.False(t, StatusPending.AdvanceTarget())
}
