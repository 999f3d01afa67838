package watch_test

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.spur.run/spur/internal/core/domain"
	"go.spur.run/spur/internal/core/ports"
	"go.spur.run/spur/internal/core/ports/mocks"
	"go.spur.run/spur/internal/engine/watch"
)

// fakeWatcher feeds hand-crafted events into the supervision loop. Like
// the real adapter it ends the stream by closing the event channel, both
// on Stop and on a notification failure.
type fakeWatcher struct {
	events   chan ports.WatchEvent
	closing  sync.Once
	err      error
	startErr error
	started  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan ports.WatchEvent)}
}

func (w *fakeWatcher) Start(_ context.Context, _ []domain.WatchTarget) error {
	if w.startErr != nil {
		return w.startErr
	}
	w.started = true
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.closing.Do(func() { close(w.events) })
	return nil
}

// fail ends the stream the way a broken notification layer would.
func (w *fakeWatcher) fail(err error) {
	w.err = err
	w.closing.Do(func() { close(w.events) })
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *fakeWatcher) Err() error { return w.err }

// fakeProcess mirrors the shell adapter's process handle: Wait blocks
// until the child ends and stays callable from several goroutines, and a
// terminated child reports no exit code.
type fakeProcess struct {
	mu      sync.Mutex
	alive   bool
	result  domain.Result
	done    chan struct{}
	ended   sync.Once
	killErr error
	killed  bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{alive: true, done: make(chan struct{})}
}

// exit simulates the child ending on its own with the given code.
func (p *fakeProcess) exit(code int) {
	p.mu.Lock()
	p.alive = false
	p.result = domain.Result{ExitCode: &code}
	p.mu.Unlock()
	p.ended.Do(func() { close(p.done) })
}

func (p *fakeProcess) Wait() domain.Result {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

func (p *fakeProcess) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alive
}

func (p *fakeProcess) Terminate() error {
	p.mu.Lock()
	if p.killErr != nil {
		p.mu.Unlock()
		return p.killErr
	}
	p.alive = false
	p.killed = true
	p.mu.Unlock()
	p.ended.Do(func() { close(p.done) })
	return nil
}

func (p *fakeProcess) wasKilled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

type supervisorTestMocks struct {
	executor *mocks.MockExecutor
	renderer *mocks.MockRenderer
	logger   *mocks.MockLogger
	watcher  *fakeWatcher
}

func setupSupervisorTest(t *testing.T) (*watch.Supervisor, supervisorTestMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := supervisorTestMocks{
		executor: mocks.NewMockExecutor(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		watcher:  newFakeWatcher(),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	return watch.NewSupervisor(newSession(), m.watcher, m.executor, m.logger), m
}

func runWatch(ctx context.Context, s *watch.Supervisor, renderer ports.Renderer, opts watch.Options) <-chan error {
	result := make(chan error, 1)
	go func() { result <- s.Watch(ctx, renderer, opts) }()
	return result
}

func dirOptions(command *domain.Command) watch.Options {
	return watch.Options{
		Targets:  []domain.WatchTarget{{Path: ".", IsDir: true}},
		Command:  command,
		Debounce: 100 * time.Millisecond,
	}
}

func TestSupervisor_ReporterMode(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)

		m.renderer.EXPECT().Report(modified("a.txt")).Times(2)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(nil))
		synctest.Wait()

		// Let the armed gate's startup window elapse.
		time.Sleep(150 * time.Millisecond)
		writeFile(t, "a.txt", "two\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()

		// Confirmed change inside the debounce window: no report.
		writeFile(t, "a.txt", "three\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()

		time.Sleep(150 * time.Millisecond)
		writeFile(t, "a.txt", "four\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()

		cancel()
		require.NoError(t, <-result)
	})
}

func TestSupervisor_UnconfirmedEventNotReported(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(nil))
		synctest.Wait()

		// The event arrives but the content never changed.
		m.watcher.events <- modified("a.txt")
		synctest.Wait()

		cancel()
		require.NoError(t, <-result)
	})
}

func TestSupervisor_LaunchAndCancelKillsChild(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)
		command := domain.NewCommand("npm run dev")
		proc := newFakeProcess()

		m.executor.EXPECT().Start(gomock.Any(), command).Return(proc, nil)
		gomock.InOrder(
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("npm run dev"),
			m.renderer.EXPECT().FenceClose(),
		)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(&command))
		synctest.Wait()

		// The deliberate kill on shutdown is not rendered as a failure.
		cancel()
		require.NoError(t, <-result)
		assert.True(t, proc.wasKilled())
	})
}

func TestSupervisor_RestartOnChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)
		command := domain.NewCommand("make serve")
		first := newFakeProcess()
		second := newFakeProcess()

		gomock.InOrder(
			m.executor.EXPECT().Start(gomock.Any(), command).Return(first, nil),
			m.executor.EXPECT().Start(gomock.Any(), command).Return(second, nil),
		)
		gomock.InOrder(
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("make serve"),
			m.renderer.EXPECT().FenceClose(),
			m.renderer.EXPECT().Report(modified("a.txt")),
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("make serve"),
			m.renderer.EXPECT().FenceClose(),
		)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(&command))
		synctest.Wait()

		time.Sleep(150 * time.Millisecond)
		writeFile(t, "a.txt", "two\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()
		assert.True(t, first.wasKilled())

		// A second confirmed change inside the debounce window must not
		// restart again.
		writeFile(t, "a.txt", "three\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()
		assert.False(t, second.wasKilled())

		cancel()
		require.NoError(t, <-result)
		assert.True(t, second.wasKilled())
	})
}

func TestSupervisor_ChildExitRenderedOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)
		command := domain.NewCommand("make check")
		first := newFakeProcess()
		second := newFakeProcess()

		gomock.InOrder(
			m.executor.EXPECT().Start(gomock.Any(), command).Return(first, nil),
			m.executor.EXPECT().Start(gomock.Any(), command).Return(second, nil),
		)
		gomock.InOrder(
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("make check"),
			m.renderer.EXPECT().FenceClose(),
			m.renderer.EXPECT().Failure("make check", gomock.Any()),
			m.renderer.EXPECT().Report(modified("a.txt")),
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("make check"),
			m.renderer.EXPECT().FenceClose(),
		)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(&command))
		synctest.Wait()

		first.exit(2)
		synctest.Wait()

		time.Sleep(150 * time.Millisecond)
		writeFile(t, "a.txt", "two\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()
		assert.False(t, first.wasKilled())

		cancel()
		require.NoError(t, <-result)
		assert.True(t, second.wasKilled())
	})
}

func TestSupervisor_ChildExitThenImmediateChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)
		command := domain.NewCommand("make check")
		first := newFakeProcess()
		second := newFakeProcess()

		gomock.InOrder(
			m.executor.EXPECT().Start(gomock.Any(), command).Return(first, nil),
			m.executor.EXPECT().Start(gomock.Any(), command).Return(second, nil),
		)

		// Whether the loop sees the exit or the change first, the failed
		// block is closed out exactly once before the restart.
		gomock.InOrder(
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("make check"),
			m.renderer.EXPECT().FenceClose(),
			m.renderer.EXPECT().Failure("make check", gomock.Any()),
			m.renderer.EXPECT().Report(modified("a.txt")),
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("make check"),
			m.renderer.EXPECT().FenceClose(),
		)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(&command))
		synctest.Wait()

		time.Sleep(150 * time.Millisecond)
		first.exit(5)
		writeFile(t, "a.txt", "two\n")
		m.watcher.events <- modified("a.txt")
		synctest.Wait()

		cancel()
		require.NoError(t, <-result)
		assert.False(t, first.wasKilled())
	})
}

func TestSupervisor_KillFailureFatal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)
		command := domain.NewCommand("stubborn")
		proc := newFakeProcess()
		errKill := errors.New("operation not permitted")
		proc.killErr = errKill

		m.executor.EXPECT().Start(gomock.Any(), command).Return(proc, nil)
		gomock.InOrder(
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("stubborn"),
		)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(&command))
		synctest.Wait()

		time.Sleep(150 * time.Millisecond)
		writeFile(t, "a.txt", "two\n")
		m.watcher.events <- modified("a.txt")

		err := <-result
		assert.ErrorIs(t, err, errKill)

		// Release the completion goroutine still waiting on the child.
		proc.exit(137)
	})
}

func TestSupervisor_NotifierFailureFatal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)
		command := domain.NewCommand("npm run dev")
		proc := newFakeProcess()
		errNotify := errors.New("event queue overflowed")

		m.executor.EXPECT().Start(gomock.Any(), command).Return(proc, nil)
		gomock.InOrder(
			m.renderer.EXPECT().FenceOpen(),
			m.renderer.EXPECT().Prompt(),
			m.renderer.EXPECT().Command("npm run dev"),
			m.renderer.EXPECT().FenceClose(),
		)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(&command))
		synctest.Wait()

		m.watcher.fail(errNotify)

		err := <-result
		assert.ErrorIs(t, err, errNotify)
		assert.True(t, proc.wasKilled())
	})
}

func TestSupervisor_StreamEndReturnsNil(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, "a.txt", "one\n")
		sup, m := setupSupervisorTest(t)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		result := runWatch(ctx, sup, m.renderer, dirOptions(nil))
		synctest.Wait()

		require.NoError(t, m.watcher.Stop())
		require.NoError(t, <-result)
	})
}

func TestSupervisor_MissingTargetFatal(t *testing.T) {
	t.Chdir(t.TempDir())
	sup, m := setupSupervisorTest(t)

	err := sup.Watch(t.Context(), m.renderer, watch.Options{
		Targets: []domain.WatchTarget{{Path: "absent.txt"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrFileOpenFailed.Error())
	assert.False(t, m.watcher.started)
}

func TestSupervisor_WatcherStartFatal(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "a.txt", "one\n")
	sup, m := setupSupervisorTest(t)
	errStart := errors.New("too many open files")
	m.watcher.startErr = errStart

	err := sup.Watch(t.Context(), m.renderer, dirOptions(nil))

	assert.ErrorIs(t, err, errStart)
}

func TestSupervisor_LaunchFailureFatal(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "a.txt", "one\n")
	sup, m := setupSupervisorTest(t)
	command := domain.NewCommand("definitely not a command")
	errSpawn := errors.New("spawn failed")

	m.executor.EXPECT().Start(gomock.Any(), command).Return(nil, errSpawn)
	gomock.InOrder(
		m.renderer.EXPECT().FenceOpen(),
		m.renderer.EXPECT().Prompt(),
		m.renderer.EXPECT().Command("definitely not a command"),
		m.renderer.EXPECT().FenceClose(),
	)

	err := sup.Watch(t.Context(), m.renderer, dirOptions(&command))

	assert.ErrorIs(t, err, errSpawn)
}
