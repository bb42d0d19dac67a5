package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const testSecret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

var overridable = []string{
	"PARLOUR_CONFIG",
	"PARLOUR_PORT",
	"PARLOUR_DB_NAME",
	"PARLOUR_TOKEN_TTL",
	"PARLOUR_STATUS_CONCURRENCY",
	"PARLOUR_REALTIME_REQUIRE_AUTH",
	"PARLOUR_ALLOWED_ORIGINS",
	"PARLOUR_TELEGRAM_TOKEN",
	"PARLOUR_TELEGRAM_CHAT_ID",
	"PARLOUR_REALTIME_PING_INTERVAL",
	"PARLOUR_REALTIME_PONG_WAIT",
}

func TestLoadConfig(t *testing.T) {
	Convey("Given the minimum required environment", t, func() {
		// leaves share the process environment, so every override is cleared up front
		for _, key := range overridable {
			t.Setenv(key, "")
			So(os.Unsetenv(key), ShouldBeNil)
		}
		t.Setenv("PARLOUR_MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("PARLOUR_PASETO_SECRET", testSecret)

		Convey("Defaults fill everything else", func() {
			cfg, err := LoadConfig()
			So(err, ShouldBeNil)
			So(cfg.Port, ShouldEqual, "3000")
			So(cfg.DBName, ShouldEqual, "parlour")
			So(cfg.TokenTTL, ShouldEqual, 24*time.Hour)
			So(cfg.PunchMaxClockSkew, ShouldEqual, time.Minute)
			So(cfg.Origins(), ShouldResemble, []string{"http://localhost:5173", "http://127.0.0.1:5173"})
			So(cfg.TelegramEnabled(), ShouldBeFalse)
			So(cfg.Location(), ShouldEqual, time.UTC)
			So(cfg.RealtimePingInterval, ShouldEqual, 25*time.Second)
			So(cfg.RealtimePongWait, ShouldEqual, 45*time.Second)
		})

		Convey("The pong wait must outlast the ping interval", func() {
			t.Setenv("PARLOUR_REALTIME_PING_INTERVAL", "30s")
			t.Setenv("PARLOUR_REALTIME_PONG_WAIT", "30s")
			_, err := LoadConfig()
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			t.Setenv("PARLOUR_REALTIME_PING_INTERVAL", "0s")
			_, err = LoadConfig()
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			t.Setenv("PARLOUR_REALTIME_PING_INTERVAL", "10s")
			cfg, err := LoadConfig()
			So(err, ShouldBeNil)
			So(cfg.RealtimePongWait, ShouldEqual, 30*time.Second)
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("PARLOUR_PORT", "8080")
			t.Setenv("PARLOUR_TOKEN_TTL", "2h")
			t.Setenv("PARLOUR_STATUS_CONCURRENCY", "3")
			t.Setenv("PARLOUR_REALTIME_REQUIRE_AUTH", "true")
			t.Setenv("PARLOUR_ALLOWED_ORIGINS", "https://a.example, https://b.example")

			cfg, err := LoadConfig()
			So(err, ShouldBeNil)
			So(cfg.Port, ShouldEqual, "8080")
			So(cfg.TokenTTL, ShouldEqual, 2*time.Hour)
			So(cfg.StatusConcurrency, ShouldEqual, 3)
			So(cfg.RealtimeRequireAuth, ShouldBeTrue)
			So(cfg.Origins(), ShouldResemble, []string{"https://a.example", "https://b.example"})
		})

		Convey("A YAML file sits between defaults and the environment", func() {
			path := filepath.Join(t.TempDir(), "parlour.yaml")
			err := os.WriteFile(path, []byte("port: \"4000\"\ndb_name: salon\ntimezone: Asia/Jakarta\n"), 0o600)
			So(err, ShouldBeNil)
			t.Setenv("PARLOUR_CONFIG", path)
			t.Setenv("PARLOUR_DB_NAME", "salon_prod")

			cfg, err := LoadConfig()
			So(err, ShouldBeNil)
			So(cfg.Port, ShouldEqual, "4000")
			So(cfg.DBName, ShouldEqual, "salon_prod")
			So(cfg.Location().String(), ShouldEqual, "Asia/Jakarta")
		})

		Convey("A short secret is rejected", func() {
			t.Setenv("PARLOUR_PASETO_SECRET", "c2hvcnQ=")
			_, err := LoadConfig()
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A missing mongo uri is rejected", func() {
			t.Setenv("PARLOUR_MONGO_URI", "")
			_, err := LoadConfig()
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Telegram settings must come as a pair", func() {
			t.Setenv("PARLOUR_TELEGRAM_TOKEN", "123:abc")
			_, err := LoadConfig()
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			t.Setenv("PARLOUR_TELEGRAM_CHAT_ID", "-1001")
			cfg, err := LoadConfig()
			So(err, ShouldBeNil)
			So(cfg.TelegramEnabled(), ShouldBeTrue)
			So(cfg.TelegramChatID, ShouldEqual, int64(-1001))
		})
	})
}
