package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func potTestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "account_id", "name", "target_amount", "current_amount", "deposit_day", "created_at", "updated_at", "deleted_at"})
}

func TestPotHandler_Create_RequiresSavingsAccount(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 活期账户不能挂储蓄罐
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountTestRows().
			AddRow(1, 1, "日常账户", "current", "1200.00", "0.00", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/pots", NewPotHandler().Create)

	body := `{"account_id":1,"name":"度假基金","target_amount":"3000","deposit_day":1}`
	req := httptest.NewRequest("POST", "/pots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "只有储蓄账户可以创建储蓄罐", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPotHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountTestRows().
			AddRow(2, 1, "储蓄账户", "savings", "5000.00", "0.00", time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `pots`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/pots", NewPotHandler().Create)

	body := `{"account_id":2,"name":"度假基金","target_amount":"3000","deposit_day":1}`
	req := httptest.NewRequest("POST", "/pots", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPotHandler_Pay(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pots` .*FOR UPDATE").
		WillReturnRows(potTestRows().
			AddRow(10, 2, "度假基金", "3000.00", "100.00", 1, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `accounts` .*FOR UPDATE").
		WillReturnRows(accountTestRows().
			AddRow(2, 1, "储蓄账户", "savings", "5000.00", "0.00", time.Now(), time.Now(), nil))
	mock.ExpectExec("UPDATE `pots` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `accounts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/pots/:id/payments", NewPotHandler().Pay)

	body := `{"amount":"50"}`
	req := httptest.NewRequest("POST", "/pots/10/payments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	pot := data["pot"].(map[string]interface{})
	assert.Equal(t, "150", pot["current_amount"])

	// 供款是父账户余额内的虚拟预留，账户余额保持不变
	account := data["account"].(map[string]interface{})
	assert.Equal(t, "5000", account["current_balance"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPotHandler_Pay_NonPositiveAmount(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/pots/:id/payments", NewPotHandler().Pay)

	body := `{"amount":"-5"}`
	req := httptest.NewRequest("POST", "/pots/10/payments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "供款金额必须大于 0", resp["message"])
}

func TestPotHandler_Pay_PotMissing(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `pots` .*FOR UPDATE").
		WillReturnRows(potTestRows())
	mock.ExpectRollback()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/pots/:id/payments", NewPotHandler().Pay)

	body := `{"amount":"50"}`
	req := httptest.NewRequest("POST", "/pots/99/payments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
