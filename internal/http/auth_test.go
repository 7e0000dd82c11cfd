package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/http/handlers"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/services"
)

func newAuthApp(t *testing.T) (*fiber.App, *repos.UserRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusTooManyRequests)
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)
	return app, userRepo
}

func TestLogin_SuccessFailAndThrottle(t *testing.T) {
	app, _ := newAuthApp(t)

	// seeded operator logs in
	resp, err := app.Test(jsonReq("POST", "/login",
		`{"email":"sadia@salepos.test","password":"Passw0rd!"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp.StatusCode)
	}
	body := decodeMap(t, resp)
	if body["role"] != "OPERATOR" || body["email"] != "sadia@salepos.test" {
		t.Fatalf("bad login payload: %+v", body)
	}

	// wrong password, generic rejection
	resp, err = app.Test(jsonReq("POST", "/login",
		`{"email":"sadia@salepos.test","password":"Wrong123!"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}

	// hammer it past the limiter
	throttled := false
	for i := 0; i < 6; i++ {
		resp, err = app.Test(jsonReq("POST", "/login",
			`{"email":"sadia@salepos.test","password":"Wrong123!"}`, ""))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			throttled = true
			break
		}
	}
	if !throttled {
		t.Fatal("login limiter never kicked in")
	}
}

func TestLogout_UnbindsSession(t *testing.T) {
	app, userRepo := newAuthApp(t)
	if err := userRepo.BindSession("sid-x", "u-sadia"); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("POST", "/logout", "", "sid-x"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: want 200, got %d", resp.StatusCode)
	}
	if _, err := userRepo.SessionUser("sid-x"); err == nil {
		t.Fatal("session still bound after logout")
	}
}

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatal(err)
	}
	if len(hashes) == 0 {
		t.Fatal("no seeded users")
	}
	for _, h := range hashes {
		if h == "Passw0rd!" || len(h) < 20 {
			t.Fatalf("password stored in the clear: %q", h)
		}
	}
}
