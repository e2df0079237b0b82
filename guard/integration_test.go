// Copyright 2025 The Crema Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build integration

package guard_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"crema.dev/routing/guard"
	"crema.dev/routing/route"
	"crema.dev/routing/shotlog"
)

var _ = Describe("Guard with the shot log table", Label("integration"), func() {
	var (
		srv    *httptest.Server
		client *http.Client
		reg    *prometheus.Registry
	)

	BeforeEach(func() {
		reg = prometheus.NewRegistry()

		r := chi.NewRouter()
		r.Use(guard.New(shotlog.Map(),
			guard.WithAuthenticator(func(r *http.Request) bool {
				c, err := r.Cookie("session")
				return err == nil && c.Value == "barista"
			}),
			guard.WithMetrics(reg),
		))

		echo := func(w http.ResponseWriter, r *http.Request) {
			e, _ := guard.EntryFromContext(r.Context())
			_, _ = io.WriteString(w, e.Name())
		}
		r.Get("/", echo)
		r.Get("/log", echo)
		r.Get("/settings/integrations", echo)
		r.Get("/share/{uid}", echo)
		r.Get("/api/shots/{id}", echo)
		r.Get("/api/health", echo)

		srv = httptest.NewServer(r)
		client = srv.Client()
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	})

	AfterEach(func() {
		srv.Close()
	})

	get := func(path string, cookie *http.Cookie) *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		Expect(err).NotTo(HaveOccurred())
		if cookie != nil {
			req.AddCookie(cookie)
		}
		resp, err := client.Do(req)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(resp.Body.Close)
		return resp
	}

	body := func(resp *http.Response) string {
		b, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return string(b)
	}

	Describe("anonymous visitors", func() {
		It("reach public pages", func() {
			resp := get("/share/abc123", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body(resp)).To(Equal("share"))

			Expect(get("/", nil).StatusCode).To(Equal(http.StatusOK))
			Expect(get("/api/health", nil).StatusCode).To(Equal(http.StatusOK))
		})

		It("are sent to the login page from app routes", func() {
			resp := get("/settings/integrations", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusTemporaryRedirect))

			login := route.Resolve(shotlog.Get("login"), nil, route.Values{"callbackUrl": "/settings/integrations"})
			Expect(resp.Header.Get("Location")).To(Equal(login))
		})

		It("receive problem details from the API", func() {
			resp := get("/api/shots/42", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(resp.Header.Get("Content-Type")).To(HavePrefix("application/problem+json"))
			Expect(body(resp)).To(ContainSubstring(`"route":"api.shots"`))
		})
	})

	Describe("signed-in users", func() {
		It("reach protected pages", func() {
			resp := get("/log", &http.Cookie{Name: "session", Value: "barista"})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(body(resp)).To(Equal("log"))
		})
	})

	It("counts every decision", func() {
		get("/", nil)
		get("/log", nil)
		get("/log", &http.Cookie{Name: "session", Value: "barista"})

		Expect(testutil.CollectAndCount(reg, "crema_guard_decisions_total")).To(Equal(3))
	})
})
