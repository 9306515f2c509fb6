package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konaseemakart/backend/config"
	"github.com/konaseemakart/backend/database"
)

type fakeSender struct {
	phone string
	code  string
	err   error
}

func (f *fakeSender) Send(phone, code string) error {
	f.phone = phone
	f.code = code
	return f.err
}

func setupMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := database.Kart
	database.Kart = db
	t.Cleanup(func() {
		database.Kart = prev
		db.Close()
	})
	return mock
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSendOTPRejectsInvalidPhone(t *testing.T) {
	Gateway = &fakeSender{}

	rec := postJSON(t, SendOTP, map[string]string{"phoneNumber": "12345"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendOTPStoresAndDelivers(t *testing.T) {
	mock := setupMock(t)
	sender := &fakeSender{}
	Gateway = sender

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pending_logins`)).
		WithArgs("9876543210", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, SendOTP, map[string]string{"phoneNumber": "9876543210"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9876543210", sender.phone)
	assert.Regexp(t, `^\d{6}$`, sender.code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendOTPPersistsBeforeDeliveryFailure(t *testing.T) {
	mock := setupMock(t)
	Gateway = &fakeSender{err: errors.New("gateway down")}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pending_logins`)).
		WithArgs("9876543210", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, SendOTP, map[string]string{"phoneNumber": "9876543210"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// the upsert still ran: the code remains verifiable despite the 500
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPSuccessIssuesToken(t *testing.T) {
	mock := setupMock(t)
	config.SecretKey = []byte("test-secret")
	config.OTPTTL = 10 * time.Minute

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT otp, created_at FROM pending_logins WHERE phone = $1`)).
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"otp", "created_at"}).AddRow("123456", time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pending_logins WHERE phone = $1 AND otp = $2`)).
		WithArgs("9876543210", "123456").WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, VerifyOTP, map[string]string{"phoneNumber": "9876543210", "otp": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OTP verified successfully", resp["message"])
	assert.NotEmpty(t, resp["access_token"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPIncorrectCode(t *testing.T) {
	mock := setupMock(t)
	config.OTPTTL = 10 * time.Minute

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT otp, created_at FROM pending_logins WHERE phone = $1`)).
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"otp", "created_at"}).AddRow("654321", time.Now()))

	rec := postJSON(t, VerifyOTP, map[string]string{"phoneNumber": "9876543210", "otp": "123456"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPNoPendingLogin(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT otp, created_at FROM pending_logins WHERE phone = $1`)).
		WithArgs("9876543210").WillReturnError(sql.ErrNoRows)

	rec := postJSON(t, VerifyOTP, map[string]string{"phoneNumber": "9876543210", "otp": "123456"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPMissingFields(t *testing.T) {
	rec := postJSON(t, VerifyOTP, map[string]string{"phoneNumber": "9876543210"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
