package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/okian/varsity/internal/adapters/repository"
	service "github.com/okian/varsity/internal/app"
	"github.com/okian/varsity/internal/config"
	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/reference"
	"github.com/okian/varsity/internal/domain/valuation"
	"github.com/okian/varsity/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithLevel("error")); err != nil {
		panic(err)
	}
}

func request(id, tag string, yards float64) valuation.Request {
	return valuation.Request{
		Athlete: model.Athlete{ID: id, PositionTag: tag, Class: model.Junior},
		Record: model.SeasonStatRecord{
			Sport: model.Football, Season: 2024, GamesPlayed: 12, GamesStarted: 12, Snaps: 800,
			Stats: map[string]float64{
				"receiving_yards": yards, "receptions": yards / 14, "receiving_tds": yards / 110,
				"pass_attempts": 400, "completions": 260, "passing_yards": yards * 3, "passing_tds": 25,
			},
		},
		Team:   model.TeamContext{Conference: "Big Ten", WinPct: model.Pct(0.7), OpponentAvgWinPct: model.Pct(0.55), Exposure: model.ExposurePower},
		Brand:  model.BrandSignals{Followers: 50_000, EngagementRate: 0.04, MediaMentions: 20},
		Market: model.MarketInputs{Opportunity: 0.7},
	}
}

func started(opts ...service.Option) (*service.Service, func()) {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc, func() { _ = svc.Stop(context.Background()) }
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

func writeTemp(content string) string {
	f, err := os.CreateTemp("", "varsity-service-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	if err := f.Close(); err != nil {
		panic(err)
	}
	return f.Name()
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(16))

		Convey("Then stats report it stopped and calls are refused", func() {
			So(svc.GetStats()["started"], ShouldEqual, false)
			_, err := svc.Submit(context.Background(), "", request("wr-1", "WR", 900))
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Value(context.Background(), request("wr-1", "WR", 900))
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When started and stopped", func() {
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, true)
			So(svc.Archetypes(), ShouldContain, "balanced")

			So(svc.Stop(ctx), ShouldBeNil)
			So(svc.Stop(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given an invalid reload schedule", t, func() {
		svc := service.New(service.WithReloadSchedule("every now and then"))
		err := svc.Start(context.Background())
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "reload schedule")
	})

	Convey("Given breakpoints for an unknown stat", t, func() {
		svc := service.New(service.WithBreakpoints(map[string]map[string][]config.Breakpoint{
			"edge": {"touchdowns": {{Raw: 0, Points: 0}, {Raw: 1, Points: 100}}},
		}))
		So(svc.Start(context.Background()), ShouldNotBeNil)
	})

	Convey("Given a configuration", t, func() {
		cfg := config.New(context.Background())
		cfg.WorkerCount = 3
		cfg.Archetypes = map[string]config.Archetype{
			"portal_flip": {Production: 0.5, Predictive: 0.1, Scarcity: 0.2, Market: 0.2},
		}
		svc, stop := started(service.WithConfig(cfg))
		defer stop()

		So(svc.GetStats()["workerCount"], ShouldEqual, 3)
		So(svc.Archetypes(), ShouldContain, "portal_flip")
	})
}

func TestService_Submit(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc, stop := started(service.WithWorkerCount(2))
		defer stop()
		ctx := context.Background()

		Convey("When a valuation is submitted", func() {
			res, err := svc.Submit(ctx, "", request("wr-1", "WR", 900))
			So(err, ShouldBeNil)
			So(res.JobID, ShouldNotBeEmpty)
			So(res.RequestID, ShouldEqual, "wr-1:2024:default")
			So(res.Duplicate, ShouldBeFalse)

			Convey("Then it is stored by a worker", func() {
				So(eventually(func() bool {
					_, err := svc.Valuation(ctx, "wr-1", 2024)
					return err == nil
				}), ShouldBeTrue)
				v, _ := svc.Valuation(ctx, "wr-1", 0)
				So(v.RunID, ShouldNotBeEmpty)
				So(v.ComputedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And the same request again is a duplicate", func() {
				dup, err := svc.Submit(ctx, "", request("wr-1", "WR", 900))
				So(err, ShouldBeNil)
				So(dup.Duplicate, ShouldBeTrue)
				So(dup.JobID, ShouldBeEmpty)
			})
		})

		Convey("When an explicit request id is reused for another athlete", func() {
			_, err := svc.Submit(ctx, "req-1", request("wr-2", "WR", 900))
			So(err, ShouldBeNil)
			dup, err := svc.Submit(ctx, "req-1", request("wr-3", "WR", 900))
			So(err, ShouldBeNil)
			So(dup.Duplicate, ShouldBeTrue)
		})

		Convey("When the request is invalid", func() {
			req := request("", "WR", 900)
			_, err := svc.Submit(ctx, "", req)
			So(errors.Is(err, valuation.ErrInvalidRequest), ShouldBeTrue)
		})
	})

	Convey("Given a tiny queue", t, func() {
		svc, stop := started(service.WithWorkerCount(1), service.WithQueueSize(1))
		defer stop()
		ctx := context.Background()

		accepted, rejected := 0, 0
		var retry string
		for i := 0; i < 200; i++ {
			id := fmt.Sprintf("ath-%d", i)
			_, err := svc.Submit(ctx, "", request(id, "WR", float64(i)))
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, service.ErrBackpressure):
				rejected++
				retry = id
			}
		}
		if retry != "" {
			// A rejected submission is forgotten, so a retry is never a duplicate.
			res, err := svc.Submit(ctx, "", request(retry, "WR", 0))
			if err == nil {
				So(res.Duplicate, ShouldBeFalse)
			} else {
				So(errors.Is(err, service.ErrBackpressure), ShouldBeTrue)
			}
		}
		So(accepted+rejected, ShouldEqual, 200)
		So(accepted, ShouldBeGreaterThan, 0)
	})
}

func TestService_SubmitRetryAfterFailure(t *testing.T) {
	Convey("Given a started service whose tables lack a quarterback entry", t, func() {
		svc, stop := started(service.WithWorkerCount(1))
		defer stop()
		ctx := context.Background()

		data := reference.Default()
		delete(data.Positions, "QB")
		broken, err := valuation.New(reference.NewCatalog(data, nil), nil, nil)
		So(err, ShouldBeNil)
		service.SwapEngine(svc, broken)

		Convey("When a quarterback submission fails in the worker", func() {
			res, err := svc.Submit(ctx, "", request("qb-1", "QB", 900))
			So(err, ShouldBeNil)
			So(res.Duplicate, ShouldBeFalse)

			Convey("Then its request id is forgotten", func() {
				So(eventually(func() bool { return svc.GetStats()["dedupeEntries"] == int64(0) }), ShouldBeTrue)
				_, err := svc.Valuation(ctx, "qb-1", 2024)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("And a retry after the tables are fixed is accepted and stored", func() {
				So(eventually(func() bool { return svc.GetStats()["dedupeEntries"] == int64(0) }), ShouldBeTrue)
				So(svc.Reload(ctx), ShouldBeNil)

				retry, err := svc.Submit(ctx, "", request("qb-1", "QB", 900))
				So(err, ShouldBeNil)
				So(retry.Duplicate, ShouldBeFalse)
				So(retry.RequestID, ShouldEqual, res.RequestID)
				So(eventually(func() bool {
					_, err := svc.Valuation(ctx, "qb-1", 2024)
					return err == nil
				}), ShouldBeTrue)
			})
		})
	})
}

func TestService_Batch(t *testing.T) {
	Convey("Given a started service with a fixed clock", t, func() {
		at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
		svc, stop := started(service.WithClock(func() time.Time { return at }), service.WithMaxBatchSize(5))
		defer stop()
		ctx := context.Background()

		Convey("When a batch mixes valid and invalid athletes", func() {
			reqs := []valuation.Request{
				request("wr-1", "WR", 1200),
				request("", "WR", 100),
				request("qb-1", "QB", 1100),
			}
			results, err := svc.ValueBatch(ctx, reqs)
			So(err, ShouldBeNil)

			Convey("Then failures are marked per athlete", func() {
				So(len(results), ShouldEqual, 3)
				So(results[0].Err, ShouldBeNil)
				So(errors.Is(results[1].Err, valuation.ErrInvalidRequest), ShouldBeTrue)
				So(results[2].Err, ShouldBeNil)
			})

			Convey("Then successes are stamped and stored", func() {
				So(results[0].Valuation.ComputedAt, ShouldEqual, at)
				So(results[0].Valuation.RunID, ShouldNotEqual, results[2].Valuation.RunID)
				stored, err := svc.Valuation(ctx, "qb-1", 2024)
				So(err, ShouldBeNil)
				So(stored.RunID, ShouldEqual, results[2].Valuation.RunID)
			})

			Convey("Then the leaderboard ranks them", func() {
				all, err := svc.Leaderboard(ctx, 10, "")
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 2)
				So(all[0].Rank, ShouldEqual, 1)
				So(all[0].CombinedValue.GreaterThanOrEqual(all[1].CombinedValue), ShouldBeTrue)

				wrs, err := svc.Leaderboard(ctx, 10, "wr")
				So(err, ShouldBeNil)
				So(len(wrs), ShouldEqual, 1)
				So(wrs[0].AthleteID, ShouldEqual, "wr-1")

				_, err = svc.Leaderboard(ctx, 0, "")
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})

		Convey("When the batch is too large or empty", func() {
			var reqs []valuation.Request
			for i := 0; i < 6; i++ {
				reqs = append(reqs, request(fmt.Sprintf("wr-%d", i), "WR", 500))
			}
			_, err := svc.ValueBatch(ctx, reqs)
			So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
			_, err = svc.ValueBatch(ctx, nil)
			So(errors.Is(err, service.ErrEmptyBatch), ShouldBeTrue)
		})

		Convey("When a batch repeats an athlete", func() {
			reqs := []valuation.Request{request("wr-7", "WR", 700), request("wr-7", "WR", 700)}
			results, err := svc.ValueBatch(ctx, reqs)
			So(err, ShouldBeNil)

			Convey("Then each entry is valued on its own", func() {
				So(results[0].Err, ShouldBeNil)
				So(results[1].Err, ShouldBeNil)
				So(results[0].Index, ShouldEqual, 0)
				So(results[1].Index, ShouldEqual, 1)
				So(results[0].Valuation.RunID, ShouldNotEqual, results[1].Valuation.RunID)
			})
		})

		Convey("When no valuation is stored", func() {
			_, err := svc.Valuation(ctx, "nobody", 0)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When previewing WAR", func() {
			w, err := svc.WAR(ctx, request("qb-2", "QB", 1000))
			So(err, ShouldBeNil)
			So(w.Position, ShouldEqual, model.QB)
			_, err = svc.Valuation(ctx, "qb-2", 2024)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_BatchLimits(t *testing.T) {
	Convey("Given a batch timeout that has already passed", t, func() {
		svc, stop := started(service.WithWorkerCount(1), service.WithBatchTimeout(time.Nanosecond))
		defer stop()

		results, err := svc.ValueBatch(context.Background(), []valuation.Request{
			request("wr-1", "WR", 900), request("wr-2", "WR", 800),
		})
		So(err, ShouldBeNil)

		Convey("Then every athlete is marked canceled", func() {
			for _, r := range results {
				So(errors.Is(r.Err, valuation.ErrCanceled), ShouldBeTrue)
				So(r.Valuation, ShouldBeNil)
			}
		})
	})

	Convey("Given a queue smaller than the batch", t, func() {
		svc, stop := started(service.WithWorkerCount(1), service.WithQueueSize(1), service.WithMaxBatchSize(50))
		defer stop()

		var reqs []valuation.Request
		for i := 0; i < 50; i++ {
			reqs = append(reqs, request(fmt.Sprintf("wr-%d", i), "WR", float64(100+i)))
		}
		results, err := svc.ValueBatch(context.Background(), reqs)
		So(err, ShouldBeNil)

		Convey("Then every athlete is either valued or rejected for backpressure", func() {
			valued := 0
			for i, r := range results {
				So(r.Index, ShouldEqual, i)
				if r.Err == nil {
					So(r.Valuation, ShouldNotBeNil)
					valued++
					continue
				}
				So(errors.Is(r.Err, service.ErrBackpressure), ShouldBeTrue)
			}
			So(valued, ShouldBeGreaterThan, 0)
		})
	})
}

func TestService_Reload(t *testing.T) {
	Convey("Given a service over a reference file", t, func() {
		path := writeTemp(`version: "2024.7"`)
		defer func() { _ = os.Remove(path) }()
		svc, stop := started(service.WithReferences(path, nil))
		defer stop()
		ctx := context.Background()

		v, err := svc.Value(ctx, request("wr-1", "WR", 800))
		So(err, ShouldBeNil)
		So(v.ReferenceVersion, ShouldEqual, "2024.7")

		Convey("When the file changes", func() {
			So(os.WriteFile(path, []byte(`version: "2024.8"`), 0o600), ShouldBeNil)
			So(svc.Reload(ctx), ShouldBeNil)

			v, err := svc.Value(ctx, request("wr-1", "WR", 800))
			So(err, ShouldBeNil)
			So(v.ReferenceVersion, ShouldEqual, "2024.8")
		})

		Convey("When the file becomes invalid", func() {
			So(os.WriteFile(path, []byte("positions:\n  RB:\n    baseline: 40\n"), 0o600), ShouldBeNil)
			So(svc.Reload(ctx), ShouldNotBeNil)

			Convey("Then the previous tables keep serving", func() {
				v, err := svc.Value(ctx, request("wr-1", "WR", 800))
				So(err, ShouldBeNil)
				So(v.ReferenceVersion, ShouldEqual, "2024.7")
			})
		})
	})
}
