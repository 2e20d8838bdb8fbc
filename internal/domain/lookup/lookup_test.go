package lookup_test

import (
	"testing"

	"github.com/okian/draftkit/internal/domain/lookup"
	"github.com/okian/draftkit/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func athlete(name string, c model.Category) model.Athlete {
	a, err := model.NewAthlete(name, "FA", c, 10, 40)
	if err != nil {
		panic(err)
	}
	return a
}

func TestResolve(t *testing.T) {
	Convey("Given a small catalog", t, func() {
		steve := athlete("Steve Smith", model.WR)
		torrey := athlete("Torrey Smith", model.WR)
		rodgers := athlete("Aaron Rodgers", model.QB)
		catalog := []model.Athlete{steve, rodgers, torrey}

		Convey("When two names contain the pattern", func() {
			res := lookup.Resolve("smith", catalog)

			Convey("Then the result should be ambiguous with both in catalog order", func() {
				So(res.Kind, ShouldEqual, lookup.KindAmbiguous)
				So(res.Matches, ShouldHaveLength, 2)
				So(res.Matches[0].ID, ShouldEqual, steve.ID)
				So(res.Matches[1].ID, ShouldEqual, torrey.ID)
			})
		})

		Convey("When exactly one name matches regardless of case", func() {
			res := lookup.Resolve("RODG", catalog)

			Convey("Then the athlete should be returned", func() {
				So(res.Kind, ShouldEqual, lookup.KindUnique)
				So(res.Athlete.ID, ShouldEqual, rodgers.ID)
				So(res.Matches, ShouldBeEmpty)
			})
		})

		Convey("When nothing matches", func() {
			res := lookup.Resolve("brady", catalog)

			Convey("Then the result should be not found", func() {
				So(res.Kind, ShouldEqual, lookup.KindNotFound)
			})
		})

		Convey("When the pattern is a regular expression", func() {
			res := lookup.Resolve("^torrey", catalog)

			Convey("Then anchors should apply", func() {
				So(res.Kind, ShouldEqual, lookup.KindUnique)
				So(res.Athlete.ID, ShouldEqual, torrey.ID)
			})
		})

		Convey("When the pattern is not a valid expression", func() {
			odd := athlete("Odell (OBJ", model.WR)
			res := lookup.Resolve("(obj", append(catalog, odd))

			Convey("Then it should be matched literally", func() {
				So(res.Kind, ShouldEqual, lookup.KindUnique)
				So(res.Athlete.ID, ShouldEqual, odd.ID)
			})
		})

		Convey("When the catalog is empty", func() {
			res := lookup.Resolve("smith", nil)

			Convey("Then the result should be not found", func() {
				So(res.Kind, ShouldEqual, lookup.KindNotFound)
			})
		})

		Convey("When the catalog is not modified by resolution", func() {
			before := len(catalog)
			_ = lookup.Resolve("s", catalog)
			So(catalog, ShouldHaveLength, before)
		})
	})
}

func TestKindString(t *testing.T) {
	Convey("Given resolution kinds", t, func() {
		So(lookup.KindNotFound.String(), ShouldEqual, "not_found")
		So(lookup.KindUnique.String(), ShouldEqual, "unique")
		So(lookup.KindAmbiguous.String(), ShouldEqual, "ambiguous")
	})
}
