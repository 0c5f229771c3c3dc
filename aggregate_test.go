package gazetteer

import (
	"path/filepath"

	. "gopkg.in/check.v1"
)

func (s *GazetteerSuite) TestClosestEntryTypes(c *C) {
	c.Assert(s.aggregate.ClosestEntryTypes("simba"), Equals, "characters")
	c.Assert(s.aggregate.ClosestEntryTypes("safari"), Equals, "parks")
	c.Assert(s.aggregate.ClosestEntryTypes("SIMBA"), Equals, "characters")
	c.Assert(s.aggregate.ClosestEntryTypes("zzzzz"), Equals, None)
	c.Assert(s.aggregate.ClosestEntryTypes(""), Equals, None)
}

func (s *GazetteerSuite) TestClosestEntryTypesFuzzy(c *C) {
	// "simla" is one substitution from "simba", within the budget of 1.
	c.Assert(s.aggregate.ClosestEntryTypes("simla"), Equals, "characters")
	c.Assert(s.aggregate.ClosestEntryTypes("safary"), Equals, "parks")
}

func (s *GazetteerSuite) TestClosestTokenTypes(c *C) {
	c.Assert(s.aggregate.ClosestTokenTypes("mickey"), Equals, "characters")
	c.Assert(s.aggregate.ClosestTokenTypes("kingdom"), Equals, "parks")
	c.Assert(s.aggregate.ClosestTokenTypes("zzzzz"), Equals, None)
}

func (s *GazetteerSuite) TestSharedTokenJoinsCategories(c *C) {
	// "the" appears in "the mouse" (characters) and "the kingdom" (parks);
	// its category set renders sorted and underscore-joined.
	c.Assert(s.aggregate.ClosestTokenTypes("the"), Equals, "characters_parks")
}

func (s *GazetteerSuite) TestAggregateMinimumDistances(c *C) {
	c.Assert(s.aggregate.MinimumDistanceToEntry("simba"), Equals, 0.0)
	c.Assert(s.aggregate.MinimumDistanceToToken("safari"), Equals, 0.0)
	c.Assert(s.aggregate.MinimumDistanceToToken("mickeey"), Equals, 1.0/7.0)
	c.Assert(s.aggregate.MinimumDistanceToEntry("zzzzzzzz"), Equals, NoMatch)
	c.Assert(s.aggregate.MinimumDistanceToEntry(""), Equals, NoMatch)
}

func (s *GazetteerSuite) TestAggregateCounts(c *C) {
	// characters: "mickey mouse", "mickey", "the mouse", "simba";
	// parks: "safari", "magic kingdom", "the kingdom".
	c.Assert(s.aggregate.EntryCount(), Equals, 7)
	// Distinct tokens: mickey mouse the simba safari magic kingdom.
	c.Assert(s.aggregate.TokenCount(), Equals, 7)
}

func (s *GazetteerSuite) TestAggregateDeterministicCategoryOrder(c *C) {
	// Same data loaded under reversed map insertion still renders sorted.
	ag, err := NewAggregateGazetteer(map[string]string{
		"parks":      filepath.Join(s.dir, "parks.txt"),
		"characters": filepath.Join(s.dir, "characters.txt"),
	})
	c.Assert(err, IsNil)
	c.Assert(ag.ClosestTokenTypes("the"), Equals, "characters_parks")
}
