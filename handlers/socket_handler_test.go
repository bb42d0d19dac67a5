package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
	"parlour-api/pkg/realtime"
)

// scriptedConn feeds queued client frames to the handler and records what the hub writes back.
type scriptedConn struct {
	inbound chan realtime.Message

	mu      sync.Mutex
	written []realtime.Message
}

func newScriptedConn() *scriptedConn {
	return &scriptedConn{inbound: make(chan realtime.Message, 8)}
}

func (s *scriptedConn) ReadJSON(v interface{}) error {
	msg, ok := <-s.inbound
	if !ok {
		return io.EOF
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (s *scriptedConn) WriteJSON(v interface{}) error {
	msg, _ := v.(realtime.Message)
	s.mu.Lock()
	s.written = append(s.written, msg)
	s.mu.Unlock()
	return nil
}

func (s *scriptedConn) Close() error { return nil }

func (s *scriptedConn) events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.written))
	for _, m := range s.written {
		out = append(out, m.Event)
	}
	return out
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestSocketHandlerServeConn(t *testing.T) {
	Convey("Given a socket handler over a fresh hub", t, func() {
		hub := realtime.NewHub()
		conn := newScriptedConn()

		serve := func(h *SocketHandler, isAdmin bool) chan struct{} {
			done := make(chan struct{})
			go func() {
				h.serveConn(conn, isAdmin)
				close(done)
			}()
			return done
		}

		Convey("join_admin subscribes the connection to attendance updates", func() {
			done := serve(NewSocketHandler(hub, nil, nil, false, 0), false)
			conn.inbound <- realtime.Message{Event: realtime.EventJoinAdmin}
			So(eventually(func() bool { return hub.Members(realtime.AdminRoom) == 1 }), ShouldBeTrue)

			hub.NotifyAttendance(context.Background(), models.AttendanceUpdate{})
			So(eventually(func() bool {
				ev := conn.events()
				return len(ev) == 1 && ev[0] == realtime.EventAttendanceUpdate
			}), ShouldBeTrue)

			Convey("and leave_admin unsubscribes it", func() {
				conn.inbound <- realtime.Message{Event: realtime.EventLeaveAdmin}
				So(eventually(func() bool { return hub.Members(realtime.AdminRoom) == 0 }), ShouldBeTrue)
				close(conn.inbound)
				<-done
			})

			Convey("and disconnecting removes it from the hub", func() {
				close(conn.inbound)
				<-done
				So(hub.Members(realtime.AdminRoom), ShouldEqual, 0)
				So(hub.Connections(), ShouldEqual, 0)
			})
		})

		Convey("Unknown events get an error frame", func() {
			done := serve(NewSocketHandler(hub, nil, nil, false, 0), false)
			conn.inbound <- realtime.Message{Event: "dance"}
			So(eventually(func() bool {
				ev := conn.events()
				return len(ev) == 1 && ev[0] == realtime.EventError
			}), ShouldBeTrue)
			close(conn.inbound)
			<-done
		})

		Convey("With authentication required", func() {
			h := NewSocketHandler(hub, nil, nil, true, 0)

			Convey("anonymous clients cannot join the admin room", func() {
				done := serve(h, false)
				conn.inbound <- realtime.Message{Event: realtime.EventJoinAdmin}
				So(eventually(func() bool { return len(conn.events()) == 1 }), ShouldBeTrue)
				So(conn.events()[0], ShouldEqual, realtime.EventError)
				So(hub.Members(realtime.AdminRoom), ShouldEqual, 0)
				close(conn.inbound)
				<-done
			})

			Convey("admins can", func() {
				done := serve(h, true)
				conn.inbound <- realtime.Message{Event: realtime.EventJoinAdmin}
				So(eventually(func() bool { return hub.Members(realtime.AdminRoom) == 1 }), ShouldBeTrue)
				close(conn.inbound)
				<-done
			})
		})
	})
}

type stubTokens map[string]*models.Claims

func (s stubTokens) ValidateToken(token string) (*models.Claims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, io.ErrUnexpectedEOF
}

type stubUsers map[primitive.ObjectID]*models.User

func (s stubUsers) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s[id], nil
}

func TestSocketHandlerUpgrade(t *testing.T) {
	Convey("Given the upgrade guard", t, func() {
		admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
		h := NewSocketHandler(realtime.NewHub(), stubTokens{"good": {UserID: admin.ID}}, stubUsers{admin.ID: admin}, true, 0)

		Convey("Plain HTTP requests are refused", func() {
			app := fiber.New()
			app.Get("/ws", h.Upgrade, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ws", nil))
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, fiber.StatusUpgradeRequired)
		})

		Convey("Only tokens of existing admins count", func() {
			ctx := context.Background()
			So(h.isAdminToken(ctx, "good"), ShouldBeTrue)
			So(h.isAdminToken(ctx, "forged"), ShouldBeFalse)
			So(h.isAdminToken(ctx, ""), ShouldBeFalse)
		})
	})
}
