package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// The protected action must never run for an anonymous visitor; both
// rejections below happen before any database access.

func protectedRouter(invoked *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(nil))
	router.POST("/protected", func(c *gin.Context) {
		*invoked = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	invoked := false
	router := protectedRouter(&invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if invoked {
		t.Error("protected action ran for an anonymous visitor")
	}
}

func TestAuthMiddlewareRejectsMalformedToken(t *testing.T) {
	invoked := false
	router := protectedRouter(&invoked)

	for _, header := range []string{"garbage", "Bearer", "Bearer not.a.token", "Basic abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
	if invoked {
		t.Error("protected action ran with an invalid token")
	}
}

func TestAuthMiddlewareDeniesRepeatedAttempts(t *testing.T) {
	// Access stays denied no matter how many times the same visitor
	// retries within a session.
	invoked := false
	router := protectedRouter(&invoked)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("Authorization", "Bearer still.not.valid")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want %d", i, w.Code, http.StatusUnauthorized)
		}
	}
	if invoked {
		t.Error("protected action ran after repeated denied attempts")
	}
}

func gateRouter(ident Identity, invoked *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(authGate(func(string) Identity { return ident }))
	router.POST("/protected", func(c *gin.Context) {
		*invoked = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAuthGateBlocksInactiveMember(t *testing.T) {
	// A deactivated member is turned away with an explicit notice and
	// must never reach the protected action, no matter how often they
	// retry in the same session.
	invoked := false
	router := gateRouter(Identity{State: IdentityInactive, UserID: 7, Tier: "Gold"}, &invoked)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/protected", nil)
		req.Header.Set("Authorization", "Bearer some.valid.token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("attempt %d: status = %d, want %d", i, w.Code, http.StatusForbidden)
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("attempt %d: bad response body: %v", i, err)
		}
		if resp["deactivated"] != true {
			t.Errorf("attempt %d: response carries no deactivated notice: %v", i, resp)
		}
	}
	if invoked {
		t.Error("protected action ran for a deactivated member")
	}
}

func TestAuthGateAdmitsActiveMember(t *testing.T) {
	invoked := false
	router := gateRouter(Identity{State: IdentityActive, UserID: 7, Tier: "Silver", Role: "member"}, &invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/protected", nil)
	req.Header.Set("Authorization", "Bearer some.valid.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !invoked {
		t.Error("protected action did not run for an active member")
	}
}

func TestResolveIdentityFailsClosedOnBadHeader(t *testing.T) {
	for _, header := range []string{"", "Bearer", "token-without-scheme", "Bearer bad.token.here"} {
		ident := ResolveIdentity(nil, header)
		if ident.State != IdentityAnonymous {
			t.Errorf("header %q: state = %q, want %q", header, ident.State, IdentityAnonymous)
		}
	}
}
