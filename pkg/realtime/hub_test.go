package realtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"parlour-api/models"
	"parlour-api/pkg/realtime"
)

type fakeConn struct {
	mu       sync.Mutex
	received []realtime.Message
	failing  bool
	closed   bool
	block    chan struct{}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.received = append(f.received, v.(realtime.Message))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messages() []realtime.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]realtime.Message, len(f.received))
	copy(out, f.received)
	return out
}

// flush unregisters the connection, which waits for its writer to drain.
func flush(h *realtime.Hub, id string) {
	h.Unregister(id)
}

func TestHubMembership(t *testing.T) {
	Convey("Given a hub with one registered connection", t, func() {
		h := realtime.NewHub()
		conn := &fakeConn{}
		id := h.Register(conn)

		Convey("When it joins the admin room twice", func() {
			So(h.Join(id, realtime.AdminRoom), ShouldBeTrue)
			So(h.Join(id, realtime.AdminRoom), ShouldBeTrue)

			Convey("Then it is a single member and receives one copy of a broadcast", func() {
				So(h.Members(realtime.AdminRoom), ShouldEqual, 1)
				So(h.Broadcast(realtime.AdminRoom, realtime.EventAttendanceUpdate, "x"), ShouldEqual, 1)
				flush(h, id)
				So(len(conn.messages()), ShouldEqual, 1)
			})
		})

		Convey("When it leaves a room it never joined", func() {
			h.Leave(id, realtime.AdminRoom)

			Convey("Then nothing changes", func() {
				So(h.Members(realtime.AdminRoom), ShouldEqual, 0)
				So(h.Connections(), ShouldEqual, 1)
			})
		})

		Convey("When an unknown connection tries to join", func() {
			Convey("Then it is refused", func() {
				So(h.Join("nope", realtime.AdminRoom), ShouldBeFalse)
				So(h.Members(realtime.AdminRoom), ShouldEqual, 0)
			})
		})

		Convey("When it disconnects while in the room", func() {
			h.Join(id, realtime.AdminRoom)
			h.Unregister(id)

			Convey("Then it is removed from the room and from the hub", func() {
				So(h.Members(realtime.AdminRoom), ShouldEqual, 0)
				So(h.Connections(), ShouldEqual, 0)
				So(h.IsMember(id, realtime.AdminRoom), ShouldBeFalse)
				So(func() { h.Unregister(id) }, ShouldNotPanic)
			})
		})
	})
}

func TestHubBroadcastScoping(t *testing.T) {
	Convey("Given three connections", t, func() {
		h := realtime.NewHub()
		member, outsider, leaver := &fakeConn{}, &fakeConn{}, &fakeConn{}
		memberID := h.Register(member)
		outsiderID := h.Register(outsider)
		leaverID := h.Register(leaver)

		h.Join(memberID, realtime.AdminRoom)
		h.Join(leaverID, realtime.AdminRoom)

		h.Broadcast(realtime.AdminRoom, realtime.EventAttendanceUpdate, 1)
		h.Leave(leaverID, realtime.AdminRoom)
		h.Broadcast(realtime.AdminRoom, realtime.EventAttendanceUpdate, 2)

		lateConn := &fakeConn{}
		lateID := h.Register(lateConn)
		h.Join(lateID, realtime.AdminRoom)

		for _, id := range []string{memberID, outsiderID, leaverID, lateID} {
			flush(h, id)
		}

		Convey("Then the member gets both messages in order", func() {
			msgs := member.messages()
			So(len(msgs), ShouldEqual, 2)
			So(msgs[0].Data, ShouldEqual, 1)
			So(msgs[1].Data, ShouldEqual, 2)
			So(msgs[0].Event, ShouldEqual, realtime.EventAttendanceUpdate)
		})

		Convey("Then a connection that never joined gets nothing", func() {
			So(outsider.messages(), ShouldBeEmpty)
		})

		Convey("Then a connection that left only has what was sent before leaving", func() {
			msgs := leaver.messages()
			So(len(msgs), ShouldEqual, 1)
			So(msgs[0].Data, ShouldEqual, 1)
		})

		Convey("Then a connection that joined afterwards gets nothing retroactively", func() {
			So(lateConn.messages(), ShouldBeEmpty)
		})
	})
}

func TestHubBestEffort(t *testing.T) {
	Convey("Given a room with no members", t, func() {
		h := realtime.NewHub()

		Convey("Then broadcasting succeeds with zero deliveries", func() {
			So(h.Broadcast(realtime.AdminRoom, realtime.EventAttendanceUpdate, nil), ShouldEqual, 0)
		})
	})

	Convey("Given a member whose writer is stuck", t, func() {
		h := realtime.NewHub(realtime.WithSendBuffer(1))
		stuck := &fakeConn{block: make(chan struct{})}
		id := h.Register(stuck)
		h.Join(id, realtime.AdminRoom)

		Convey("When more messages arrive than the queue holds", func() {
			queued := 0
			for i := 0; i < 5; i++ {
				queued += h.Broadcast(realtime.AdminRoom, realtime.EventAttendanceUpdate, i)
			}

			Convey("Then broadcast never blocks and the overflow is dropped", func() {
				So(queued, ShouldBeBetweenOrEqual, 1, 2)
				close(stuck.block)
				flush(h, id)
				So(len(stuck.messages()), ShouldEqual, queued)
			})
		})
	})

	Convey("Given a member whose connection is broken", t, func() {
		h := realtime.NewHub()
		broken := &fakeConn{failing: true}
		healthy := &fakeConn{}
		brokenID := h.Register(broken)
		healthyID := h.Register(healthy)
		h.Join(brokenID, realtime.AdminRoom)
		h.Join(healthyID, realtime.AdminRoom)

		h.NotifyAttendance(context.Background(), models.AttendanceUpdate{})
		flush(h, brokenID)
		flush(h, healthyID)

		Convey("Then the healthy member still receives the update and the broken one is closed", func() {
			So(len(healthy.messages()), ShouldEqual, 1)
			So(broken.closed, ShouldBeTrue)
		})
	})
}

func TestHubConcurrentMutation(t *testing.T) {
	Convey("Given connections joining and leaving while broadcasts run", t, func() {
		h := realtime.NewHub()
		var wg sync.WaitGroup
		stop := make(chan struct{})

		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					h.Broadcast(realtime.AdminRoom, realtime.EventAttendanceUpdate, "tick")
				}
			}
		}()

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := h.Register(&fakeConn{})
				h.Join(id, realtime.AdminRoom)
				time.Sleep(time.Millisecond)
				h.Leave(id, realtime.AdminRoom)
				h.Join(id, realtime.AdminRoom)
				h.Unregister(id)
			}()
		}

		time.Sleep(20 * time.Millisecond)
		close(stop)
		wg.Wait()

		Convey("Then the hub ends empty without panicking", func() {
			So(h.Connections(), ShouldEqual, 0)
			So(h.Members(realtime.AdminRoom), ShouldEqual, 0)
		})
	})
}

// pingConn counts keepalive pings and can start failing them to imitate a vanished peer.
type pingConn struct {
	fakeConn
	pings   int
	pingErr error
}

func (p *pingConn) Ping() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pings++
	return p.pingErr
}

func (p *pingConn) state() (pings int, closed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pings, p.closed
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

func TestHubKeepalive(t *testing.T) {
	Convey("Given a hub pinging every few milliseconds", t, func() {
		h := realtime.NewHub(realtime.WithPingInterval(5 * time.Millisecond))

		Convey("A live connection keeps receiving pings and stays open", func() {
			conn := &pingConn{}
			id := h.Register(conn)
			So(waitFor(func() bool { n, _ := conn.state(); return n >= 3 }), ShouldBeTrue)
			_, closed := conn.state()
			So(closed, ShouldBeFalse)
			h.Unregister(id)
		})

		Convey("A failed ping closes the connection and stops further pings", func() {
			conn := &pingConn{pingErr: errors.New("i/o timeout")}
			id := h.Register(conn)
			So(waitFor(func() bool { _, closed := conn.state(); return closed }), ShouldBeTrue)

			pings, _ := conn.state()
			time.Sleep(25 * time.Millisecond)
			after, _ := conn.state()
			So(after, ShouldEqual, pings)
			h.Unregister(id)
		})

		Convey("Connections without ping support are left alone", func() {
			conn := &fakeConn{}
			id := h.Register(conn)
			time.Sleep(20 * time.Millisecond)
			h.Unregister(id)
			So(conn.closed, ShouldBeFalse)
		})
	})

	Convey("Given pings disabled", t, func() {
		h := realtime.NewHub(realtime.WithPingInterval(0))
		conn := &pingConn{}
		id := h.Register(conn)
		time.Sleep(20 * time.Millisecond)
		h.Unregister(id)

		Convey("No ping is sent", func() {
			pings, _ := conn.state()
			So(pings, ShouldEqual, 0)
		})
	})
}
