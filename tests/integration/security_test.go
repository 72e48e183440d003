// Package integration provides integration testing for the TeaKhata backend.
// This file probes the security posture of the HTTP surface: headers,
// request id propagation, bearer token verification and role gates. The
// whole suite runs against an in-memory engine, so it needs no database.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teakhata/backend/internal/infrastructure/auth"
	"github.com/teakhata/backend/internal/infrastructure/config"
	"github.com/teakhata/backend/internal/interfaces/http/middleware"
	"github.com/teakhata/backend/tests/testutil"
)

const (
	testJWTSecret = "test-secret-key-at-least-32-chars"
	testJWTIssuer = "teakhata-auth"
)

// SecurityTestServer runs the production middleware chain over stub handlers
// so auth and hardening behavior can be probed without a database. Tokens
// come from the external auth provider in production; here the mint helpers
// below play that role.
type SecurityTestServer struct {
	Engine      *gin.Engine
	Revocations *auth.InMemoryRevocationList
}

// NewSecurityTestServer creates a test server with the security middleware
func NewSecurityTestServer(t *testing.T) *SecurityTestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	verifier := auth.NewTokenVerifier(config.JWTConfig{
		Secret: testJWTSecret,
		Issuer: testJWTIssuer,
	})
	revocations := auth.NewInMemoryRevocationList()

	engine := gin.New()
	engine.Use(middleware.Secure())               // Security headers
	engine.Use(middleware.RequestID())            // Request ID generation
	engine.Use(middleware.BodyLimit(1024 * 1024)) // 1MB body limit
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Verifier:       verifier,
		RevocationList: revocations,
		SkipPaths:      []string{"/health"},
	}))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// Echo endpoint standing in for any authenticated JSON route
	api.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_INPUT", "message": err.Error()},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})

	// Admin-gated write route standing in for the ledger endpoints
	ledger := api.Group("/ledger")
	ledger.Use(middleware.RequireRole(auth.RoleAdmin))
	ledger.POST("/sales", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// Partner-gated portal route scoped to the token's customer id
	portal := api.Group("/portal")
	portal.Use(middleware.RequireRole(auth.RolePartner))
	portal.GET("/me/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"customer_id": middleware.GetJWTCustomerID(c)},
		})
	})

	return &SecurityTestServer{Engine: engine, Revocations: revocations}
}

// Request makes an HTTP request against the in-memory engine
func (ts *SecurityTestServer) Request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// mintToken signs claims the way the external auth provider would.
func mintToken(t *testing.T, claims *auth.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func adminClaims() *auth.Claims {
	now := time.Now()
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-sec-admin",
			Issuer:    testJWTIssuer,
			Subject:   "account-admin",
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		Role: auth.RoleAdmin,
		Name: "Owner",
	}
}

func partnerClaims(customerID string) *auth.Claims {
	now := time.Now()
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-sec-partner",
			Issuer:    testJWTIssuer,
			Subject:   "account-partner",
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		Role:       auth.RolePartner,
		CustomerID: customerID,
		Name:       "Gupta Tea House",
	}
}

// asTestContext wraps a recorder so the shared response assertions apply.
func asTestContext(w *httptest.ResponseRecorder) *testutil.TestContext {
	return &testutil.TestContext{Recorder: w}
}

// ============================================================================
// Security Header Tests
// ============================================================================

func TestSecurity_Headers(t *testing.T) {
	ts := NewSecurityTestServer(t)

	t.Run("security_headers_are_set_on_responses", func(t *testing.T) {
		token := mintToken(t, adminClaims())
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "DENY", resp.Header().Get("X-Frame-Options"),
			"X-Frame-Options should prevent clickjacking")
		assert.Equal(t, "1; mode=block", resp.Header().Get("X-XSS-Protection"),
			"X-XSS-Protection should enable browser XSS filter")
		assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"),
			"X-Content-Type-Options should prevent MIME sniffing")
		assert.Equal(t, "strict-origin-when-cross-origin", resp.Header().Get("Referrer-Policy"),
			"Referrer-Policy should limit referrer information")
		assert.Contains(t, resp.Header().Get("Content-Security-Policy"), "default-src 'self'",
			"CSP should restrict sources to same origin")
	})

	t.Run("headers_are_present_on_unauthenticated_responses", func(t *testing.T) {
		// The header middleware runs before auth, so even rejections are hardened
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "DENY", resp.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	})

	t.Run("request_id_is_generated_for_each_request", func(t *testing.T) {
		resp1 := ts.Request("GET", "/health", nil, nil)
		resp2 := ts.Request("GET", "/health", nil, nil)

		reqID1 := resp1.Header().Get("X-Request-ID")
		reqID2 := resp2.Header().Get("X-Request-ID")
		assert.NotEmpty(t, reqID1, "Request ID should be generated")
		assert.NotEmpty(t, reqID2, "Request ID should be generated")
		assert.NotEqual(t, reqID1, reqID2, "Request IDs should be unique")
	})

	t.Run("custom_request_id_is_preserved", func(t *testing.T) {
		customRequestID := "custom-request-id-12345"
		resp := ts.Request("GET", "/health", nil, map[string]string{
			"X-Request-ID": customRequestID,
		})

		assert.Equal(t, customRequestID, resp.Header().Get("X-Request-ID"),
			"Custom request ID should be preserved")
	})
}

// ============================================================================
// Token Verification Tests
// ============================================================================

func TestSecurity_TokenVerification(t *testing.T) {
	ts := NewSecurityTestServer(t)

	t.Run("request_without_token_is_rejected", func(t *testing.T) {
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "INVALID_TOKEN")
	})

	t.Run("malformed_authorization_header_is_rejected", func(t *testing.T) {
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Basic dXNlcjpwYXNz",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "INVALID_TOKEN")
	})

	t.Run("expired_token_is_rejected", func(t *testing.T) {
		claims := adminClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		token := mintToken(t, claims)

		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "TOKEN_EXPIRED")
	})

	t.Run("tampered_signature_is_rejected", func(t *testing.T) {
		token := mintToken(t, adminClaims())
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3, "JWT should have 3 parts")
		parts[2] = "tampered" + parts[2]

		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Bearer " + strings.Join(parts, "."),
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "INVALID_TOKEN")
	})

	t.Run("token_from_foreign_issuer_is_rejected", func(t *testing.T) {
		claims := adminClaims()
		claims.Issuer = "some-other-service"
		token := mintToken(t, claims)

		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "INVALID_TOKEN")
	})

	t.Run("revoked_token_is_rejected", func(t *testing.T) {
		claims := adminClaims()
		claims.ID = "jti-sec-revoked"
		token := mintToken(t, claims)
		ts.Revocations.Revoke("jti-sec-revoked", time.Hour)

		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "TOKEN_REVOKED")
	})

	t.Run("token_in_cookie_is_not_accepted", func(t *testing.T) {
		// Bearer-only auth keeps browser-attached credentials out of play
		token := mintToken(t, adminClaims())
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Cookie": "session_token=" + token,
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid_token_is_accepted", func(t *testing.T) {
		token := mintToken(t, partnerClaims("7"))
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{"test": "data"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusOK, resp.Code)
		testutil.AssertSuccessResponse(t, asTestContext(resp))
	})
}

// ============================================================================
// Role Separation Tests
// ============================================================================

func TestSecurity_RoleSeparation(t *testing.T) {
	ts := NewSecurityTestServer(t)

	t.Run("partner_cannot_record_sales", func(t *testing.T) {
		token := mintToken(t, partnerClaims("7"))
		resp := ts.Request("POST", "/api/v1/ledger/sales", map[string]string{"customer_id": "7"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "FORBIDDEN")
	})

	t.Run("admin_cannot_browse_partner_portal", func(t *testing.T) {
		token := mintToken(t, adminClaims())
		resp := ts.Request("GET", "/api/v1/portal/me/summary", nil, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "FORBIDDEN")
	})

	t.Run("admin_can_record_sales", func(t *testing.T) {
		token := mintToken(t, adminClaims())
		resp := ts.Request("POST", "/api/v1/ledger/sales", map[string]string{"customer_id": "7"}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusOK, resp.Code)
		testutil.AssertSuccessResponse(t, asTestContext(resp))
	})

	t.Run("partner_summary_is_scoped_to_token_customer", func(t *testing.T) {
		token := mintToken(t, partnerClaims("7"))
		resp := ts.Request("GET", "/api/v1/portal/me/summary", nil, map[string]string{
			"Authorization": "Bearer " + token,
		})

		require.Equal(t, http.StatusOK, resp.Code)
		body := testutil.JSONResponse(t, asTestContext(resp))
		data, ok := body["data"].(map[string]any)
		require.True(t, ok, "data should be a map, got: %v", body)
		assert.Equal(t, "7", data["customer_id"],
			"Portal routes should resolve the customer from the token, not the request")
	})

	t.Run("health_endpoint_is_open", func(t *testing.T) {
		resp := ts.Request("GET", "/health", nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

// ============================================================================
// Request Validation Tests
// ============================================================================

func TestSecurity_RequestValidation(t *testing.T) {
	ts := NewSecurityTestServer(t)
	token := mintToken(t, adminClaims())

	t.Run("oversized_body_is_rejected", func(t *testing.T) {
		resp := ts.Request("POST", "/api/v1/echo", map[string]string{
			"note": strings.Repeat("a", 2*1024*1024),
		}, map[string]string{
			"Authorization": "Bearer " + token,
		})

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
		testutil.AssertErrorResponse(t, asTestContext(resp), "REQUEST_TOO_LARGE")
	})

	t.Run("malformed_json_is_rejected_cleanly", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/echo", strings.NewReader(`{"broken": `))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		ts.Engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		testutil.AssertErrorResponse(t, asTestContext(w), "INVALID_INPUT")
	})

	t.Run("injection_payloads_are_treated_as_data", func(t *testing.T) {
		payloads := []struct {
			name    string
			payload string
		}{
			{"sql_or_bypass", "' OR '1'='1"},
			{"sql_drop_table", "'; DROP TABLE ledger_entries;--"},
			{"sql_union_select", "' UNION SELECT * FROM customers--"},
			{"xss_script_tag", "<script>alert('XSS')</script>"},
			{"xss_img_onerror", "<img src=x onerror=alert('XSS')>"},
			{"xss_javascript_uri", "javascript:alert('XSS')"},
		}

		for _, tc := range payloads {
			t.Run(tc.name, func(t *testing.T) {
				resp := ts.Request("POST", "/api/v1/echo", map[string]any{
					"name": tc.payload,
					"note": tc.payload,
				}, map[string]string{
					"Authorization": "Bearer " + token,
				})

				// The payload rides through as inert JSON data
				assert.Equal(t, http.StatusOK, resp.Code)
				assert.Contains(t, resp.Header().Get("Content-Type"), "application/json",
					"Response Content-Type should be application/json, not text/html")

				var result map[string]any
				err := json.Unmarshal(resp.Body.Bytes(), &result)
				assert.NoError(t, err, "Response should be valid JSON")
			})
		}
	})
}
