package service_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	service "github.com/okian/draftkit/internal/app"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	qbFile = `Aaron Rodgers GB 520 4381 39 8 53 259 2 0 0 385.2
Peyton Manning DEN 550 4727 39 15 30 63 0 1 0 371.3
Andrew Luck IND 580 4761 40 16 64 273 3 2 0 375.6
`
	rbFile = `Le'Veon Bell Upside PIT 290 1361 8 83 854 3 0 251.5
Jamaal Charles KC 259 1033 9 70 691 5 0 239.4
Marshawn Lynch Risk SEA 280 1306 13 37 367 4 0 219.3
DeMarco Murray DAL 392 1845 13 57 416 0 1 240.1
`
	wrFile = `Antonio Brown PIT 181 129 1698 13 0 0 0 209.8
Demaryius Thomas DEN 184 111 1619 11 0 0 0 186.9
Dez Bryant DAL 136 88 1320 16 0 0 0 189.0
Jordy Nelson GB 151 98 1519 13 0 0 0 183.5
`
	teFile = `Rob Gronkowski NE 120 82 1124 12 190.4
Jimmy Graham NO 125 85 889 10 148.9
`
)

func writeDataDir(t *testing.T) (map[model.Category]string, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[model.Category]string{}
	for c, body := range map[model.Category]string{model.QB: qbFile, model.RB: rbFile, model.WR: wrFile, model.TE: teFile} {
		path := filepath.Join(dir, string(c)+".txt")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		files[c] = path
	}
	keepers := filepath.Join(dir, "keepers.yaml")
	if err := os.WriteFile(keepers, []byte("keepers:\n  - name: Gronkowski\n    price: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return files, keepers
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service loading data files and keepers", t, func() {
		files, keepers := writeDataDir(t)
		svc := service.New(
			service.WithDataFiles(files),
			service.WithKeepersFile(keepers),
			service.WithLogger(logger.Nop()),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("Then the catalog holds every athlete except the keeper", func() {
			all, err := svc.Catalog(ctx, "", 0)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 12)

			view, err := svc.Roster(ctx)
			So(err, ShouldBeNil)
			So(len(view.Picks), ShouldEqual, 1)
			So(view.Picks[0].Athlete.Name, ShouldEqual, "Rob Gronkowski")
			So(view.Remaining, ShouldEqual, 170.0)
		})

		Convey("Then annotated names are cleaned", func() {
			res, err := svc.Lookup(ctx, "Bell")
			So(err, ShouldBeNil)
			So(res.Athlete.Name, ShouldEqual, "Le'Veon Bell")
		})

		Convey("When asking for the best team", func() {
			sol, err := svc.BestTeam(ctx)
			So(err, ShouldBeNil)

			Convey("Then the keeper leads the team and limits hold for additions", func() {
				So(sol.Team[0].Name, ShouldEqual, "Rob Gronkowski")
				So(sol.Team[0].Cost, ShouldEqual, 30.0)
				So(sol.AddedCost, ShouldBeLessThanOrEqualTo, 170.0)
				So(sol.Points, ShouldBeGreaterThanOrEqualTo, sol.BaselinePoints)

				counts := map[model.Category]int{}
				for _, a := range sol.Added {
					counts[a.Category]++
				}
				So(counts[model.TE], ShouldEqual, 0)
				for c, n := range counts {
					So(n, ShouldBeLessThanOrEqualTo, model.DefaultCategories()[c].Limit)
				}
			})
		})
	})

	Convey("Given a keeper file naming an ambiguous athlete", t, func() {
		files, _ := writeDataDir(t)
		keepers := filepath.Join(t.TempDir(), "keepers.yaml")
		So(os.WriteFile(keepers, []byte("keepers:\n  - name: \"^J\"\n    price: 1\n"), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithDataFiles(files),
			service.WithKeepersFile(keepers),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then Start aborts with ErrKeeper", func() {
			So(svc.Start(context.Background()), ShouldWrap, service.ErrKeeper)
		})
	})

	Convey("Given a missing data file", t, func() {
		svc := service.New(
			service.WithDataFiles(map[model.Category]string{model.QB: filepath.Join(t.TempDir(), "none.txt")}),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then Start fails", func() {
			So(svc.Start(context.Background()), ShouldWrap, os.ErrNotExist)
		})
	})
}

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a started service with concurrent clients", t, func() {
		files, _ := writeDataDir(t)
		svc := service.New(service.WithDataFiles(files), service.WithLogger(logger.Nop()))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		all, err := svc.Catalog(ctx, "", 0)
		So(err, ShouldBeNil)

		Convey("When readers and writers run at the same time", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 64)

			for _, a := range all {
				wg.Add(1)
				go func(name string) {
					defer wg.Done()
					if _, err := svc.AddByName(ctx, "^"+name+"$", 1); err != nil {
						errs <- err
					}
				}(a.Name)
			}
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := svc.BestTeam(ctx); err != nil {
						errs <- err
					}
					if _, err := svc.Lookup(ctx, "a"); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)

			Convey("Then no operation fails and every athlete is drafted once", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
				view, err := svc.Roster(ctx)
				So(err, ShouldBeNil)
				So(len(view.Picks), ShouldEqual, len(all))
				So(view.Remaining, ShouldEqual, float64(200-len(all)))

				left, err := svc.Catalog(ctx, "", 0)
				So(err, ShouldBeNil)
				So(len(left), ShouldEqual, 0)
			})
		})
	})
}
