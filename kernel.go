package ftsim

//
// Discrete-event simulation kernel: virtual clock, event queue, and the
// suspension primitives (Wait/Get/Put/AnyOf) that [Process]es use to
// cooperate on it.
//
// The kernel enforces that at most one goroutine is ever doing simulation
// work at a time. A [Process] is a goroutine that starts parked and is
// handed the baton (via an unbuffered "wake" channel) by [Env.Run] exactly
// when the event it is waiting for fires; before doing anything else it
// must hand the baton back (via an unbuffered "handback" channel) the
// moment it suspends again or returns. Because the handoff is synchronous,
// there is never a second goroutine runnable at the same time, which is
// what makes "between suspension points, execution is atomic with respect
// to the simulated world" true without any additional locking.
//

import (
	"container/heap"
	"fmt"
	"math"
)

// Env owns the virtual clock and the event queue. Construct with [NewEnv].
type Env struct {
	now    float64
	seq    uint64
	events eventHeap
	logger Logger
}

// NewEnv creates a new, empty [Env] whose virtual clock starts at zero.
func NewEnv(logger Logger) *Env {
	if logger == nil {
		panic("ftsim: NewEnv: logger must not be nil")
	}
	return &Env{logger: logger}
}

// Now returns the current virtual time in microseconds.
func (env *Env) Now() float64 {
	return env.now
}

// Logger returns the [Logger] this [Env] was constructed with.
func (env *Env) Logger() Logger {
	return env.logger
}

// Run drains the event queue, advancing the virtual clock from event to
// event, until either the queue is empty or the next scheduled event is
// past until (the simulation horizon, in microseconds; pass
// math.Inf(1) to run to quiescence).
func (env *Env) Run(until float64) {
	for {
		if len(env.events) == 0 {
			return
		}
		if env.events[0].time > until {
			return
		}
		ev := heap.Pop(&env.events).(*event)
		env.now = ev.time
		ev.proc.wake <- struct{}{}
		<-ev.proc.handback
	}
}

// RunToCompletion is a convenience for Run(math.Inf(1)).
func (env *Env) RunToCompletion() {
	env.Run(math.Inf(1))
}

// nextSeq returns the next insertion sequence number, used to break ties
// between events scheduled for the same virtual time (spec §4.A/§5: ties
// are broken by insertion order).
func (env *Env) nextSeq() uint64 {
	env.seq++
	return env.seq
}

// scheduleWake schedules proc to be woken up at virtual time t.
func (env *Env) scheduleWake(proc *Process, t float64) {
	if t < env.now {
		panic(fmt.Sprintf("ftsim: scheduleWake: time %v is before now %v", t, env.now))
	}
	heap.Push(&env.events, &event{time: t, seq: env.nextSeq(), proc: proc})
}

// event is a single entry in the event queue: at time, wake proc.
type event struct {
	time float64
	seq  uint64
	proc *Process
}

// eventHeap implements container/heap.Interface, ordering events by
// (time, seq) so that ties are broken deterministically by insertion order.
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Process is a resumable computation hosted by an [Env]. The zero value is
// invalid; obtain one by calling [Env.Spawn].
type Process struct {
	env      *Env
	name     string
	wake     chan struct{}
	handback chan struct{}
}

// Name returns the name this process was spawned with (for logging).
func (p *Process) Name() string {
	return p.name
}

// Env returns the [Env] hosting this process.
func (p *Process) Env() *Env {
	return p.env
}

// Spawn starts a new process running fn and returns immediately (it does
// NOT run fn synchronously: fn begins execution the next time [Env.Run]
// reaches this process's scheduled start, which is "now"). Use Spawn both
// for a device's long-running main loop and for the fire-and-forget
// transmission tasks a switch or playback device issues per message.
func (env *Env) Spawn(name string, fn func(p *Process)) *Process {
	p := &Process{
		env:      env,
		name:     name,
		wake:     make(chan struct{}),
		handback: make(chan struct{}),
	}
	go func() {
		<-p.wake
		fn(p)
		p.handback <- struct{}{}
	}()
	env.scheduleWake(p, env.now)
	return p
}

// suspend hands control back to [Env.Run] and blocks until this process is
// woken up again. This is the ONLY place a process actually parks; Wait,
// the blocking paths of Put/Get, and Listener's Await all funnel through it.
func (p *Process) suspend() {
	p.handback <- struct{}{}
	<-p.wake
}

// Wait suspends the calling process until now+d. A zero delay still
// suspends and re-enters the event queue at the tail of the current
// instant, which is how [FTTSlave] drains the events it spawned before
// re-arming its receive loop (spec §4.J).
func (p *Process) Wait(d float64) {
	if d < 0 {
		panic(fmt.Sprintf("ftsim: Wait: negative delay %v", d))
	}
	p.env.scheduleWake(p, p.env.now+d)
	p.suspend()
}
