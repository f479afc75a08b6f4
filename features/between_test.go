package features

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

type fakeTree struct {
	fakeRoot
	ancestors map[string][]Node
}

func (tr *fakeTree) Ancestors(selector string) ([]Node, error) {
	if err := tr.errs[selector]; err != nil {
		return nil, err
	}
	return tr.ancestors[selector], nil
}

func mentionPair() (*Template, *Template) {
	return Mention("1"), Mention("2")
}

func TestBetweenLabel(t *testing.T) {
	m1, m2 := mentionPair()
	b := Between(m1, Left(m2))
	require.Equal(t, "BETWEEN-MENTION-LEFT-OF-MENTION", b.Label)
}

func TestBetweenSharedAncestor(t *testing.T) {
	m1, m2 := mentionPair()
	root, a, bNode := word("root"), word("A"), word("B")
	tree := &fakeTree{ancestors: map[string][]Node{
		m1.Selector: {root, a, bNode},
		m2.Selector: {root, a},
	}}

	feats, err := Between(m1, m2).Apply(tree)
	require.NoError(t, err)
	// up from mention 1 through B to the common ancestor A, counted once;
	// mention 2 hangs directly below A so the downward leg is empty
	require.Equal(t, []string{"BETWEEN-MENTION-MENTION[B_A]"}, feats)
}

func TestBetweenDownwardLeg(t *testing.T) {
	m1, m2 := mentionPair()
	root, a, bNode, c, d := word("root"), word("A"), word("B"), word("C"), word("D")
	tree := &fakeTree{ancestors: map[string][]Node{
		m1.Selector: {root, a, bNode},
		m2.Selector: {root, a, c, d},
	}}

	feats, err := Between(m1, m2).Apply(tree)
	require.NoError(t, err)
	require.Equal(t, []string{"BETWEEN-MENTION-MENTION[B_A_C_D]"}, feats)
}

func TestBetweenAdjacentUnderSameParent(t *testing.T) {
	m1, m2 := mentionPair()
	root, a := word("root"), word("A")
	tree := &fakeTree{ancestors: map[string][]Node{
		m1.Selector: {root, a},
		m2.Selector: {root, a},
	}}

	feats, err := Between(m1, m2).Apply(tree)
	require.NoError(t, err)
	require.Equal(t, []string{"BETWEEN-MENTION-MENTION[A]"}, feats)
}

func TestBetweenNoCommonAncestor(t *testing.T) {
	m1, m2 := mentionPair()
	tree := &fakeTree{ancestors: map[string][]Node{
		m1.Selector: {word("X")},
		m2.Selector: {word("Y")},
	}}

	_, err := Between(m1, m2).Apply(tree)
	require.True(t, errors.Is(err, ErrNoCommonAncestor))
}

func TestBetweenEmptyChain(t *testing.T) {
	m1, m2 := mentionPair()
	tree := &fakeTree{ancestors: map[string][]Node{
		m2.Selector: {word("root"), word("A")},
	}}

	_, err := Between(m1, m2).Apply(tree)
	require.True(t, errors.Is(err, ErrNoCommonAncestor))
}

func TestBetweenAncestorQueryError(t *testing.T) {
	m1, m2 := mentionPair()
	queryErr := errors.New("bad axis")
	tree := &fakeTree{
		fakeRoot:  fakeRoot{errs: map[string]error{m1.Selector: queryErr}},
		ancestors: map[string][]Node{},
	}

	_, err := Between(m1, m2).Apply(tree)
	require.True(t, errors.Is(err, queryErr))
}

func TestBetweenNeedsAncestorSource(t *testing.T) {
	m1, m2 := mentionPair()
	root := &fakeRoot{sets: map[string][]Node{}}

	_, err := Between(m1, m2).Apply(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ancestor")
}
