// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

const seededAdminEmail = "admin@mgepcar.local"

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"` + seededAdminEmail + `","password":"wrong"}`},
		{"unknown email", `{"email":"nobody@example.com","password":"admin"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, env.Auth.Login, "/api/auth/login", tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			// Same message for both failure modes.
			if !strings.Contains(rec.Body.String(), "invalid email or password") {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestLoginTwoFAFlow(t *testing.T) {
	env := newTestEnv(t)
	adminID := adminUserID(t, env.DB)
	t.Cleanup(func() {
		// Leave the seeded account un-enrolled for other tests.
		env.UserStore.ResetTOTP(adminID)
	})
	env.UserStore.ResetTOTP(adminID)

	// Step 1: password login creates a session but not admin access.
	rec := postJSON(t, env.Auth.Login, "/api/auth/login",
		`{"email":"`+seededAdminEmail+`","password":"admin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		TwoFA       string `json:"two_fa"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if loginResp.TwoFA != "setup" {
		t.Errorf("two_fa = %q, want setup for un-enrolled account", loginResp.TwoFA)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	sess := testSession(adminID, seededAdminEmail, "admin", false)

	// Step 2: generate the TOTP secret.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/2fa/setup", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	env.Auth.TwoFASetup(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("setup status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var setupResp struct {
		Secret string `json:"secret"`
		QRPNG  string `json:"qr_png"`
		OTPURL string `json:"otp_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &setupResp); err != nil {
		t.Fatalf("decode setup response: %v", err)
	}
	if setupResp.Secret == "" || setupResp.QRPNG == "" {
		t.Fatal("expected a secret and QR code")
	}

	// Step 3: a wrong code is rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/2fa/verify",
		strings.NewReader(`{"code":"000000"}`))
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	env.Auth.TwoFAVerify(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad code status = %d, want 401", rec.Code)
	}

	// Step 4: a valid code completes enrollment and the session.
	code, err := totp.GenerateCode(setupResp.Secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/auth/2fa/verify",
		strings.NewReader(`{"code":"`+code+`"}`))
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	env.Auth.TwoFAVerify(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d; body: %s", rec.Code, rec.Body.String())
	}

	user, err := env.UserStore.FindByID(adminID)
	if err != nil || user == nil {
		t.Fatalf("reload user: %v", err)
	}
	if !user.TOTPEnabled {
		t.Error("expected TOTP enabled after first successful verify")
	}

	// A later login routes to verification, not setup.
	rec = postJSON(t, env.Auth.Login, "/api/auth/login",
		`{"email":"`+seededAdminEmail+`","password":"admin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second login status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if loginResp.TwoFA != "verify" {
		t.Errorf("two_fa = %q, want verify for enrolled account", loginResp.TwoFA)
	}
}

func TestMeRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	env.Auth.Me(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMeReportsSessionState(t *testing.T) {
	env := newTestEnv(t)
	adminID := adminUserID(t, env.DB)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(ctxWithSession(req.Context(), testSession(adminID, seededAdminEmail, "admin", true)))
	rec := httptest.NewRecorder()
	env.Auth.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Email     string `json:"email"`
		Role      string `json:"role"`
		TwoFADone bool   `json:"two_fa_done"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Email != seededAdminEmail || resp.Role != "admin" || !resp.TwoFADone {
		t.Errorf("me = %+v", resp)
	}
}
