package queue

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/valuation"
)

func job(id string) Job {
	return Job{
		ID: id,
		Request: valuation.Request{
			Athlete: model.Athlete{ID: id},
			Record:  model.SeasonStatRecord{AthleteID: id, Sport: model.Football, Season: 2024},
		},
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if c := q.Cap(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	if !q.Enqueue(ctx, job("job1")) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.ID != "job1" {
		t.Errorf("expected job1, got %v", got.ID)
	}
	if got.EnqueuedAt.IsZero() {
		t.Error("expected enqueue time to be stamped")
	}
	if got.Request.Athlete.ID != "job1" {
		t.Errorf("expected request to travel with the job, got %q", got.Request.Athlete.ID)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("job1")) || !q.Enqueue(ctx, job("job2")) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, job("job3")) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CanceledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, job("job1")) {
		t.Error("expected enqueue to fail with a canceled context")
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	numProducers := 10
	numJobs := 100

	done := make(chan bool, numProducers)
	for i := 0; i < numProducers; i++ {
		go func(id int) {
			for j := 0; j < numJobs; j++ {
				for !q.Enqueue(ctx, job(fmt.Sprintf("job%d_%d", id, j))) {
					time.Sleep(time.Millisecond)
				}
			}
			done <- true
		}(i)
	}

	var consumed atomic.Int64
	for i := 0; i < 4; i++ {
		go func() {
			for range q.Dequeue(ctx) {
				consumed.Add(1)
			}
		}()
	}

	for i := 0; i < numProducers; i++ {
		<-done
	}

	deadline := time.Now().Add(time.Second)
	for consumed.Load() < int64(numProducers*numJobs) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := consumed.Load(); n != int64(numProducers*numJobs) {
		t.Errorf("expected %d consumed, got %d", numProducers*numJobs, n)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, job("job1")) || !q.Enqueue(ctx, job("job2")) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if q.Enqueue(ctx, job("job3")) {
		t.Error("expected enqueue to fail after closing")
	}

	// Queued jobs drain before the channel closes.
	var drained []string
	timeout := time.After(200 * time.Millisecond)
	ch := q.Dequeue(ctx)
	for {
		select {
		case j, ok := <-ch:
			if !ok {
				if len(drained) != 2 {
					t.Errorf("expected 2 drained jobs, got %v", drained)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			drained = append(drained, j.ID)
		case <-timeout:
			t.Fatal("expected dequeue channel to be closed within timeout")
		}
	}
}

func TestInMemoryQueue_ReplyOnCancel(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithCancel(context.Background())

	reply := make(chan Outcome, 1)
	j := job("job1")
	j.Reply = reply
	if !q.Enqueue(context.Background(), j) {
		t.Fatal("expected enqueue to succeed")
	}

	// Nobody reads the dequeue channel, so the in-flight job is answered on cancel.
	_ = q.Dequeue(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case out := <-reply:
		if out.Err == nil || out.JobID != "job1" {
			t.Errorf("expected canceled outcome for job1, got %+v", out)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a reply after cancellation")
	}
}

func TestJob_Deliver(t *testing.T) {
	j := job("job1")
	if j.Deliver(Outcome{JobID: "job1"}) {
		t.Error("expected no delivery without a reply channel")
	}

	unbuffered := make(chan Outcome)
	j.Reply = unbuffered
	if j.Deliver(Outcome{JobID: "job1"}) {
		t.Error("expected an unread unbuffered reply to be skipped")
	}

	reply := make(chan Outcome, 1)
	j.Reply = reply
	if !j.Deliver(Outcome{JobID: "job1"}) {
		t.Fatal("expected delivery to a buffered reply")
	}
	if out := <-reply; out.JobID != "job1" {
		t.Errorf("expected outcome for job1, got %+v", out)
	}
}
