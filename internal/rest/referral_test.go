package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkFlame/business/referral"
	"linkFlame/domain"

	"github.com/labstack/echo/v4"
)

type fakeReferralService struct {
	validateErr error
	referral    domain.Referral
	gotCode     string
}

func (f *fakeReferralService) CreateCode(ctx context.Context, userID uint) (domain.Referral, error) {
	return f.referral, nil
}

func (f *fakeReferralService) ValidateCode(ctx context.Context, code string) (domain.Referral, error) {
	f.gotCode = code
	if f.validateErr != nil {
		return domain.Referral{}, f.validateErr
	}
	return f.referral, nil
}

func (f *fakeReferralService) ListMine(ctx context.Context, userID uint) ([]domain.Referral, error) {
	return nil, nil
}

func validateRequest(handler *ReferralHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler.ValidateCode(c)
	return rec
}

func TestValidateCodeReadsQueryParam(t *testing.T) {
	svc := &fakeReferralService{referral: domain.Referral{Code: "abcdef1234"}}
	handler := NewReferralHandler(svc)

	rec := validateRequest(handler, "/referrals/validate?code=abcdef1234")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotCode != "abcdef1234" {
		t.Errorf("service got code %q", svc.gotCode)
	}
	if !strings.Contains(rec.Body.String(), `"valid":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestValidateCodeMissingParam(t *testing.T) {
	svc := &fakeReferralService{}
	handler := NewReferralHandler(svc)

	rec := validateRequest(handler, "/referrals/validate")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a code, got %d", rec.Code)
	}
	if svc.gotCode != "" {
		t.Error("service must not be called without a code")
	}
}

func TestValidateCodeUnknown(t *testing.T) {
	handler := NewReferralHandler(&fakeReferralService{validateErr: referral.ErrInvalidCode})

	rec := validateRequest(handler, "/referrals/validate?code=nosuchcode")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestValidateCodeAlreadyUsed(t *testing.T) {
	handler := NewReferralHandler(&fakeReferralService{validateErr: referral.ErrCodeUsed})

	rec := validateRequest(handler, "/referrals/validate?code=abcdef1234")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
