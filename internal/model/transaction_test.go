package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialApprovalStatus(t *testing.T) {
	cases := []struct {
		name   string
		txType TransactionType
		role   Role
		want   ApprovalStatus
	}{
		{"expense by user", TransactionExpense, RoleUser, ApprovalPending},
		{"expense by manager", TransactionExpense, RoleManager, ApprovalPending},
		{"expense by admin", TransactionExpense, RoleAdmin, ApprovalApproved},
		{"payment by user", TransactionPayment, RoleUser, ApprovalApproved},
		{"payment by manager", TransactionPayment, RoleManager, ApprovalApproved},
		{"income by user", TransactionIncome, RoleUser, ApprovalApproved},
		{"income by admin", TransactionIncome, RoleAdmin, ApprovalApproved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InitialApprovalStatus(tc.txType, tc.role))
		})
	}
}

func TestPrincipalRoleChecks(t *testing.T) {
	admin := Principal{Role: RoleAdmin}
	manager := Principal{Role: RoleManager}
	user := Principal{Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsElevated())
	assert.False(t, manager.IsAdmin())
	assert.True(t, manager.IsManager())
	assert.True(t, manager.IsElevated())
	assert.False(t, user.IsElevated())
}
