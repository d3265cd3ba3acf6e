package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/auth"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		mockRepo *MockUserRepository
		service  *auth.Service
		handler  *auth.Handler
	)

	BeforeEach(func() {
		mockRepo = NewMockUserRepository()
		tokens := auth.NewJWTTokenGenerator("test-secret-with-enough-entropy-123", time.Hour)
		logger := newTestLogger()
		service = auth.NewService(mockRepo, tokens, 4, logger)
		handler = auth.NewHandler(service)
	})

	Describe("Register", func() {
		It("should return 201 with a confirmation message", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"alice","password":"s3cret"}`))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp auth.MessageResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("User registered"))
		})

		It("should return 400 for blank credentials", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"","password":""}`))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Username and password are required"))
		})

		It("should return 409 for a duplicate username", func() {
			Expect(service.Register(auth.CredentialsDTO{Username: "alice", Password: "s3cret"})).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"alice","password":"other"}`))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Username already exists"))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			Expect(service.Register(auth.CredentialsDTO{Username: "alice", Password: "s3cret"})).To(Succeed())
		})

		It("should return 200 with a token", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"s3cret"}`))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.TokenResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Token).NotTo(BeEmpty())
		})

		It("should return 401 for a wrong password", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var errResp transport.ErrorResponse
			Expect(json.NewDecoder(w.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Message).To(Equal("Invalid username or password"))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			Expect(service.Register(auth.CredentialsDTO{Username: "alice", Password: "s3cret"})).To(Succeed())

			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(internal.UsernameFromContext(r.Context())))
			}))
		})

		It("should pass a valid token through and expose the username", func() {
			tokens, err := service.Authenticate(auth.CredentialsDTO{Username: "alice", Password: "s3cret"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.Token)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("alice"))
		})

		It("should reject a missing token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a garbage token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
			req.Header.Set("Authorization", "Bearer junk")
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
