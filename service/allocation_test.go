package service

import (
	"testing"
	"time"

	"budget/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveAccounts(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, UserID: 1, Name: "日常账户", Type: models.AccountTypeCurrent, CurrentBalance: dec("1200")},
		{ID: 2, UserID: 1, Name: "储蓄账户", Type: models.AccountTypeSavings, CurrentBalance: dec("5000")},
		{ID: 3, UserID: 1, Name: "备用金", Type: models.AccountTypeSavings, CurrentBalance: dec("800")},
	}
	pots := []models.Pot{
		{ID: 10, AccountID: 2, Name: "度假基金", TargetAmount: dec("3000"), CurrentAmount: dec("1500")},
		{ID: 11, AccountID: 2, Name: "装修基金", TargetAmount: dec("2000"), CurrentAmount: dec("500")},
	}

	view := EffectiveAccounts(accounts, pots)
	require.Len(t, view, 4)

	// 活期账户正常展示
	assert.Equal(t, DisplayKindAccount, view[0].Kind)
	assert.Equal(t, "日常账户", view[0].Name)
	assert.True(t, view[0].Balance.Equal(dec("1200")))

	// 挂有储蓄罐的储蓄账户被它的罐代替，账户本体不出现
	assert.Equal(t, DisplayKindPot, view[1].Kind)
	assert.Equal(t, uint(10), view[1].PotID)
	assert.Equal(t, uint(2), view[1].AccountID)
	assert.True(t, view[1].Balance.Equal(dec("1500")))
	require.NotNil(t, view[1].TargetAmount)
	assert.True(t, view[1].TargetAmount.Equal(dec("3000")))
	assert.Equal(t, DisplayKindPot, view[2].Kind)
	assert.Equal(t, uint(11), view[2].PotID)

	// 没有储蓄罐的储蓄账户照常展示
	assert.Equal(t, DisplayKindAccount, view[3].Kind)
	assert.Equal(t, "备用金", view[3].Name)

	for _, row := range view {
		assert.NotEqual(t, "储蓄账户", row.Name, "挂罐的储蓄账户不得与罐同时出现")
	}
}

func TestEffectiveAccounts_Empty(t *testing.T) {
	assert.Empty(t, EffectiveAccounts(nil, nil))
}

func potRows(id, accountID uint, current string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "account_id", "name", "target_amount", "current_amount", "deposit_day", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, accountID, "度假基金", "3000.00", current, 1, time.Now(), time.Now(), nil)
}

func accountRows(id, userID uint, balance string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "type", "current_balance", "overdraft_limit", "created_at", "updated_at", "deleted_at"}).
		AddRow(id, userID, "储蓄账户", "savings", balance, "0.00", time.Now(), time.Now(), nil)
}

func TestApplyPotPayment_ParentBalanceUnchanged(t *testing.T) {
	db, mock, cleanup := newMockGorm(t)
	defer cleanup()

	// 罐与父账户在同一事务内加锁更新
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pots` .*FOR UPDATE").
		WillReturnRows(potRows(10, 2, "100.00"))
	mock.ExpectQuery("SELECT .* FROM `accounts` .*FOR UPDATE").
		WillReturnRows(accountRows(2, 1, "5000.00"))
	mock.ExpectExec("UPDATE `pots` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	pot, account, err := ApplyPotPayment(db, 1, 10, dec("50"))
	require.NoError(t, err)

	// 罐内金额增加，父账户余额保持不变（虚拟预留）
	assert.True(t, pot.CurrentAmount.Equal(dec("150")))
	assert.True(t, account.CurrentBalance.Equal(dec("5000")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPotPayment_RejectsNonPositiveAmount(t *testing.T) {
	db, _, cleanup := newMockGorm(t)
	defer cleanup()

	_, _, err := ApplyPotPayment(db, 1, 10, dec("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = ApplyPotPayment(db, 1, 10, dec("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyPotPayment_PotMissing(t *testing.T) {
	db, mock, cleanup := newMockGorm(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pots` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectRollback()

	_, _, err := ApplyPotPayment(db, 1, 99, dec("50"))
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPotPayment_CrossTenantLooksMissing(t *testing.T) {
	db, mock, cleanup := newMockGorm(t)
	defer cleanup()

	// 罐存在，但父账户归属别的家庭：对调用方表现为不存在
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pots` .*FOR UPDATE").
		WillReturnRows(potRows(10, 2, "100.00"))
	mock.ExpectQuery("SELECT .* FROM `accounts` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectRollback()

	_, _, err := ApplyPotPayment(db, 42, 10, dec("50"))
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
