package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/dto"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/handlers"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostSale(ctx context.Context, evt domain.PaymentConfirmed, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, evt, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) AttachAffiliateSplit(ctx context.Context, saleID string, req dto.AttachAffiliateSplitRequest, actorID string) (*domain.Split, error) {
	args := m.Called(ctx, saleID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Split), args.Error(1)
}

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

var _ portssvc.ReversalSvcFacade = (*MockReversalService)(nil)

func (m *MockReversalService) ReverseSale(ctx context.Context, evt domain.RefundRequested, actorID string) (*domain.ReversalResult, error) {
	args := m.Called(ctx, evt, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalResult), args.Error(1)
}

const (
	testWebhookAPIKey = "test-webhook-key"
	testJWTSecret     = "test-secret"
	testCallerName    = "gateway-webhook"
)

// --- Test Suite Setup ---
type WebhookHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockPostingSvc  *MockPostingService
	mockReversalSvc *MockReversalService
}

func (suite *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockPostingSvc = new(MockPostingService)
	suite.mockReversalSvc = new(MockReversalService)

	hash, err := bcrypt.GenerateFromPassword([]byte(testWebhookAPIKey), bcrypt.MinCost)
	suite.Require().NoError(err)

	cfg := &config.Config{
		JWTSecret:         testJWTSecret,
		WebhookAPIKeyHash: string(hash),
		WebhookCallerName: testCallerName,
		WebhookRateLimit:  "100-S",
	}

	services := &portssvc.ServiceContainer{
		Posting:  suite.mockPostingSvc,
		Reversal: suite.mockReversalSvc,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(logger))
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *WebhookHandlerTestSuite) postJSON(path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *WebhookHandlerTestSuite) adminToken() string {
	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return token
}

func (suite *WebhookHandlerTestSuite) TestPaymentConfirmed() {
	saleID := uuid.NewString()
	suite.mockPostingSvc.On("PostSale", mock.Anything, mock.Anything, testCallerName).Return(&domain.PostingResult{
		SaleID:           saleID,
		PlatformFeeCents: 1000,
		TenantNetCents:   9000,
	}, nil)

	w := suite.postJSON("/webhooks/payment-confirmed", gin.H{
		"saleID":         saleID,
		"organizationID": uuid.NewString(),
		"reference":      "REF123",
		"totalCents":     10000,
	}, map[string]string{"X-Api-Key": testWebhookAPIKey})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), saleID, resp.SaleID)
	assert.Equal(suite.T(), int64(1000), resp.PlatformFeeCents)
	assert.False(suite.T(), resp.AlreadyPosted)
}

func (suite *WebhookHandlerTestSuite) TestPaymentConfirmedRejectsBadAPIKey() {
	w := suite.postJSON("/webhooks/payment-confirmed", gin.H{
		"saleID":         uuid.NewString(),
		"organizationID": uuid.NewString(),
		"reference":      "REF123",
		"totalCents":     10000,
	}, map[string]string{"X-Api-Key": "wrong-key"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WebhookHandlerTestSuite) TestRefundWebhookRejectsUnknownKind() {
	w := suite.postJSON("/webhooks/refund", gin.H{
		"saleID":      uuid.NewString(),
		"amountCents": 10000,
		"kind":        "partial-refund",
	}, map[string]string{"X-Api-Key": testWebhookAPIKey})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReversalSvc.AssertNotCalled(suite.T(), "ReverseSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WebhookHandlerTestSuite) TestRefundWebhook() {
	saleID := uuid.NewString()
	suite.mockReversalSvc.On("ReverseSale", mock.Anything, mock.MatchedBy(func(evt domain.RefundRequested) bool {
		return evt.SaleID == saleID && evt.Kind == domain.ReversalChargeback
	}), testCallerName).Return(&domain.ReversalResult{
		SaleID:       saleID,
		Kind:         domain.ReversalChargeback,
		DebitedCount: 1,
		Debited: []domain.DebitedBeneficiary{
			{Role: domain.RoleTenant, AmountDebitedCents: 9000, NewBalanceCents: -500, Bucket: domain.BucketAvailable},
		},
	}, nil)

	w := suite.postJSON("/webhooks/refund", gin.H{
		"saleID":      saleID,
		"amountCents": 10000,
		"reason":      "bank dispute",
		"kind":        "chargeback",
	}, map[string]string{"X-Api-Key": testWebhookAPIKey})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ReversalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), 1, resp.DebitedCount)
	assert.Equal(suite.T(), "chargeback", resp.Kind)
}

func (suite *WebhookHandlerTestSuite) TestManualReversalRequiresJWT() {
	saleID := uuid.NewString()
	w := suite.postJSON("/api/v1/sales/"+saleID+"/reversals", gin.H{
		"saleID":      saleID,
		"amountCents": 10000,
		"kind":        "refund",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *WebhookHandlerTestSuite) TestManualReversal() {
	saleID := uuid.NewString()
	suite.mockReversalSvc.On("ReverseSale", mock.Anything, mock.Anything, "admin-1").Return(&domain.ReversalResult{
		SaleID: saleID,
		Kind:   domain.ReversalRefund,
	}, nil)

	w := suite.postJSON("/api/v1/sales/"+saleID+"/reversals", gin.H{
		"saleID":      saleID,
		"amountCents": 10000,
		"kind":        "refund",
	}, map[string]string{"Authorization": "Bearer " + suite.adminToken()})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *WebhookHandlerTestSuite) TestManualReversalSaleMismatch() {
	w := suite.postJSON("/api/v1/sales/"+uuid.NewString()+"/reversals", gin.H{
		"saleID":      uuid.NewString(),
		"amountCents": 10000,
		"kind":        "refund",
	}, map[string]string{"Authorization": "Bearer " + suite.adminToken()})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReversalSvc.AssertNotCalled(suite.T(), "ReverseSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WebhookHandlerTestSuite) TestManualReversalInvalidState() {
	saleID := uuid.NewString()
	suite.mockReversalSvc.On("ReverseSale", mock.Anything, mock.Anything, "admin-1").Return(nil, apperrors.ErrInvalidState)

	w := suite.postJSON("/api/v1/sales/"+saleID+"/reversals", gin.H{
		"saleID":      saleID,
		"amountCents": 10000,
		"kind":        "refund",
	}, map[string]string{"Authorization": "Bearer " + suite.adminToken()})

	suite.Equal(http.StatusConflict, w.Code)
}

func TestWebhookHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}
