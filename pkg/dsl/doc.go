/*
Package dsl provides a fluent builder for behavior-tree records.

It produces the same records the text loader parses, so a tree defined in Go
goes through exactly the same instantiation and linking steps as one read
from a file. This is useful for tests and for generating documents.

Example usage:

	b := dsl.New()

	b.Add("guard").Actor("Billy Bob").Root("patrol")
	b.Add("patrol").Sequence().Child("walk", "look")
	b.Add("walk").Iterative(3)
	b.Add("look").Leaf("Succeed")

	res, err := b.Build(registry.NewDefault())
	// res.Actors()[0].Execute() ...

	text, err := b.Text() // the same document as record text
*/
package dsl
