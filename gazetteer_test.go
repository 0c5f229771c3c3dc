package gazetteer

import (
	"os"
	"path/filepath"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type GazetteerSuite struct {
	dir        string
	characters *Gazetteer
	aggregate  *AggregateGazetteer
}

var _ = Suite(&GazetteerSuite{})

func (s *GazetteerSuite) SetUpSuite(c *C) {
	s.dir = c.MkDir()

	writeSource(c, s.dir, "characters.txt",
		"Mickey Mouse, Mickey, The Mouse\n"+
			"Simba\n")
	writeSource(c, s.dir, "parks.txt",
		"Safari\n"+
			"Magic Kingdom, The Kingdom\n")

	var err error
	s.characters, err = NewGazetteer("characters", filepath.Join(s.dir, "characters.txt"))
	c.Assert(err, IsNil)

	s.aggregate, err = NewAggregateGazetteer(map[string]string{
		"characters": filepath.Join(s.dir, "characters.txt"),
		"parks":      filepath.Join(s.dir, "parks.txt"),
	})
	c.Assert(err, IsNil)
}

func writeSource(c *C, dir, name, content string) {
	c.Assert(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), IsNil)
}

func (s *GazetteerSuite) TestContainsAsOfficialName(c *C) {
	c.Assert(s.characters.ContainsAsOfficialName("mickey mouse"), Equals, true)
	c.Assert(s.characters.ContainsAsOfficialName("Mickey Mouse"), Equals, true)
	c.Assert(s.characters.ContainsAsOfficialName("mickey"), Equals, false)
	c.Assert(s.characters.ContainsAsOfficialName("goofy"), Equals, false)
}

func (s *GazetteerSuite) TestContainsAsSynonym(c *C) {
	c.Assert(s.characters.ContainsAsSynonym("mickey"), Equals, true)
	c.Assert(s.characters.ContainsAsSynonym("the mouse"), Equals, true)
	c.Assert(s.characters.ContainsAsSynonym("mickey mouse"), Equals, true)
	c.Assert(s.characters.ContainsAsSynonym("goofy"), Equals, false)
}

func (s *GazetteerSuite) TestCaseInsensitivity(c *C) {
	c.Assert(s.characters.ContainsAsOfficialName("SIMBA"), Equals,
		s.characters.ContainsAsOfficialName("simba"))
	c.Assert(s.characters.ContainsAsSynonym("MiCkEy"), Equals, true)
}

func (s *GazetteerSuite) TestMinimumDistanceToToken(c *C) {
	c.Assert(s.characters.MinimumDistanceToToken("mickey"), Equals, 0.0)

	// "mickeey" has 7 runes, budget floor(0.3*7)=2, nearest token at
	// distance 1, normalized to 1/7.
	got := s.characters.MinimumDistanceToToken("mickeey")
	c.Assert(got, Equals, 1.0/7.0)

	c.Assert(s.characters.MinimumDistanceToToken("zzzzzzzz"), Equals, NoMatch)
}

func (s *GazetteerSuite) TestMinimumDistanceToOfficialName(c *C) {
	c.Assert(s.characters.MinimumDistanceToOfficialName("mickey mouse"), Equals, 0.0)
	c.Assert(s.characters.MinimumDistanceToOfficialName("simba"), Equals, 0.0)
	c.Assert(s.characters.MinimumDistanceToOfficialName("zzzzzzzz"), Equals, NoMatch)
}

func (s *GazetteerSuite) TestMinimumDistanceToSynonym(c *C) {
	c.Assert(s.characters.MinimumDistanceToSynonym("the mouse"), Equals, 0.0)

	// "мickey" style typo: one substitution over 6 runes.
	c.Assert(s.characters.MinimumDistanceToSynonym("mickej"), Equals, 1.0/6.0)
}

func (s *GazetteerSuite) TestClosestOfficialName(c *C) {
	// Matching the synonym "mickey" resolves to its canonical name.
	c.Assert(s.characters.ClosestOfficialName("mickey"), Equals, "mickey mouse")
	c.Assert(s.characters.ClosestOfficialName("mickeey"), Equals, "mickey mouse")
	c.Assert(s.characters.ClosestOfficialName("simha"), Equals, "simba")
	c.Assert(s.characters.ClosestOfficialName("zzzzzzzz"), Equals, None)
}

func (s *GazetteerSuite) TestClosestToken(c *C) {
	c.Assert(s.characters.ClosestToken("mouse"), Equals, "mouse")
	c.Assert(s.characters.ClosestToken("mousse"), Equals, "mouse")
	c.Assert(s.characters.ClosestToken("zzzzzzzz"), Equals, None)
}

func (s *GazetteerSuite) TestTokenPositionInName(c *C) {
	c.Assert(s.characters.TokenPositionInName("mickey"), Equals, 0)
	c.Assert(s.characters.TokenPositionInName("mouse"), Equals, 1)
	c.Assert(s.characters.TokenPositionInName("Mouse"), Equals, 1)
	c.Assert(s.characters.TokenPositionInName("goofy"), Equals, -1)
}

func (s *GazetteerSuite) TestTokenPositionLastWriterWins(c *C) {
	// "the" occurs at position 0 of "the mouse" after "mouse" was recorded
	// at position 1 of "mickey mouse"; the later line's field wins.
	dir := c.MkDir()
	writeSource(c, dir, "g.txt",
		"Alpha Beta\n"+
			"Gamma, Delta Beta Alpha\n")

	g, err := NewGazetteer("test", filepath.Join(dir, "g.txt"))
	c.Assert(err, IsNil)

	// "alpha": position 0 on line one, position 2 on line two.
	c.Assert(g.TokenPositionInName("alpha"), Equals, 2)
	c.Assert(g.TokenPositionInName("beta"), Equals, 1)
	c.Assert(g.TokenPositionInName("delta"), Equals, 0)
}

func (s *GazetteerSuite) TestSynonymToCanonicalLastWriterWins(c *C) {
	dir := c.MkDir()
	writeSource(c, dir, "g.txt",
		"First Name, Shared\n"+
			"Second Name, Shared\n")

	g, err := NewGazetteer("test", filepath.Join(dir, "g.txt"))
	c.Assert(err, IsNil)
	c.Assert(g.ClosestOfficialName("shared"), Equals, "second name")
}

func (s *GazetteerSuite) TestEmptyPhraseNeverMatches(c *C) {
	c.Assert(s.characters.MinimumDistanceToToken(""), Equals, NoMatch)
	c.Assert(s.characters.MinimumDistanceToOfficialName(""), Equals, NoMatch)
	c.Assert(s.characters.MinimumDistanceToSynonym(""), Equals, NoMatch)
	c.Assert(s.characters.ClosestOfficialName(""), Equals, None)
	c.Assert(s.characters.ClosestToken(""), Equals, None)
	c.Assert(s.characters.ContainsAsOfficialName(""), Equals, false)
}

func (s *GazetteerSuite) TestBlankLinesSkipped(c *C) {
	dir := c.MkDir()
	writeSource(c, dir, "g.txt", "\n\nSimba\n   \n, ,\n")

	g, err := NewGazetteer("test", filepath.Join(dir, "g.txt"))
	c.Assert(err, IsNil)
	c.Assert(g.ContainsAsOfficialName("simba"), Equals, true)
	c.Assert(g.officialNamesTrie.Len(), Equals, 1)
}

func (s *GazetteerSuite) TestMissingFileIsFatal(c *C) {
	_, err := NewGazetteer("test", filepath.Join(s.dir, "does-not-exist.txt"))
	c.Assert(err, Not(IsNil))
	c.Assert(err, ErrorMatches, `loading gazetteer "test": opening file: .*`)

	_, err = NewAggregateGazetteer(map[string]string{
		"ok":      filepath.Join(s.dir, "characters.txt"),
		"missing": filepath.Join(s.dir, "does-not-exist.txt"),
	})
	c.Assert(err, Not(IsNil))
}

func (s *GazetteerSuite) TestCategory(c *C) {
	c.Assert(s.characters.Category(), Equals, "characters")
}
