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

func TestRecurringItemHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountTestRows().
			AddRow(1, 1, "日常账户", "current", "1200.00", "0.00", time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `recurring_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/items", NewRecurringItemHandler().Create)

	body := `{"account_id":1,"name":"房贷月供","kind":"mortgage_payment","amount":"1500","day_of_month":28,"nearest_working_day":true}`
	req := httptest.NewRequest("POST", "/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "创建成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "monthly", data["frequency"])
	assert.Equal(t, true, data["active"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringItemHandler_Create_InvalidDay(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountTestRows().
			AddRow(1, 1, "日常账户", "current", "1200.00", "0.00", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/items", NewRecurringItemHandler().Create)

	body := `{"account_id":1,"name":"房租","kind":"cost","amount":"1500","day_of_month":32}`
	req := httptest.NewRequest("POST", "/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringItemHandler_Create_InvalidKind(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/items", NewRecurringItemHandler().Create)

	// kind 不在枚举内，绑定阶段即拒绝
	body := `{"account_id":1,"name":"房租","kind":"weekly_cost","amount":"1500","day_of_month":5}`
	req := httptest.NewRequest("POST", "/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestRecurringItemHandler_Create_ForeignAccount(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 账户不属于当前家庭：表现为不存在
	mock.ExpectQuery("SELECT .* FROM `accounts`").
		WillReturnRows(accountTestRows())

	router := gin.New()
	router.Use(setUserIDMiddleware(42))
	router.POST("/items", NewRecurringItemHandler().Create)

	body := `{"account_id":1,"name":"房租","kind":"cost","amount":"1500","day_of_month":5}`
	req := httptest.NewRequest("POST", "/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringItemHandler_Deactivate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `recurring_items`").
		WillReturnRows(itemTestRows().
			AddRow(1, 1, 1, "订阅", "cost", "100.00", 5, "monthly", false, true, time.Now(), time.Now(), nil))

	// 软停用：只置 active=false
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `recurring_items` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/items/:id", NewRecurringItemHandler().Deactivate)

	req := httptest.NewRequest("DELETE", "/items/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "停用成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecurringItemHandler_List_FiltersInactiveByDefault(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `recurring_items`").
		WillReturnRows(itemTestRows().
			AddRow(1, 1, 1, "房租", "cost", "1500.00", 5, "monthly", false, true, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/items", NewRecurringItemHandler().List)

	req := httptest.NewRequest("GET", "/items", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
