package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/konaseemakart/backend/config"
	"github.com/konaseemakart/backend/database/dbhelper"
	"github.com/konaseemakart/backend/sms"
	"github.com/konaseemakart/backend/utils"
)

// Gateway delivers OTP codes. Set once at startup; tests swap in a fake.
var Gateway sms.Sender

// SendOTP generates a code, persists it, then asks the gateway to deliver.
// The row is stored before the gateway result is known, so a delivery
// failure still leaves a verifiable code behind.
func SendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !utils.IsValidPhone(req.PhoneNumber) {
		utils.RespondMessage(w, http.StatusBadRequest, "Please enter a valid phone number")
		return
	}

	otp := utils.GenerateOTP()
	if err := dbhelper.UpsertOTP(req.PhoneNumber, otp); err != nil {
		logrus.WithError(err).Error("failed to store OTP")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error sending OTP")
		return
	}

	if err := Gateway.Send(req.PhoneNumber, otp); err != nil {
		logrus.WithError(err).Error("OTP delivery failed")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error sending OTP")
		return
	}

	utils.RespondMessage(w, http.StatusOK, "OTP sent successfully")
}

// VerifyOTP consumes the pending code for the phone and, on success, issues
// an access token for the session.
func VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" || req.OTP == "" {
		utils.RespondMessage(w, http.StatusBadRequest, "Phone number and OTP are required")
		return
	}

	err := dbhelper.ConsumeOTP(req.PhoneNumber, req.OTP, config.OTPTTL)
	switch {
	case errors.Is(err, dbhelper.ErrNoPendingOTP), errors.Is(err, dbhelper.ErrOTPExpired):
		utils.RespondMessage(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, dbhelper.ErrIncorrectOTP):
		utils.RespondMessage(w, http.StatusBadRequest, "Incorrect OTP")
		return
	case err != nil:
		logrus.WithError(err).Error("failed to verify OTP")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error verifying OTP")
		return
	}

	token, err := utils.GenerateAccessToken(req.PhoneNumber)
	if err != nil {
		logrus.WithError(err).Error("failed to issue access token")
		utils.RespondMessage(w, http.StatusInternalServerError, "Error verifying OTP")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message":      "OTP verified successfully",
		"access_token": token,
	})
}
