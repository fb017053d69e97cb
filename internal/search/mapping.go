package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for book typeahead documents.
//
// Titles get English stemming for word matches plus term vectors for
// highlighting; genre stays a keyword for exact filtering; numeric fields
// are stored so suggestions can surface year and popularity without a
// graph round trip.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleMapping := bleve.NewTextFieldMapping()
	titleMapping.Analyzer = en.AnalyzerName
	titleMapping.Store = true
	titleMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("title", titleMapping)

	titleCleanMapping := bleve.NewTextFieldMapping()
	titleCleanMapping.Analyzer = en.AnalyzerName
	titleCleanMapping.Store = true
	docMapping.AddFieldMappingsAt("title_clean", titleCleanMapping)

	// No stemming on publisher names
	publisherMapping := bleve.NewTextFieldMapping()
	publisherMapping.Analyzer = simple.Name
	publisherMapping.Store = true
	docMapping.AddFieldMappingsAt("publisher", publisherMapping)

	genreMapping := bleve.NewTextFieldMapping()
	genreMapping.Analyzer = keyword.Name
	genreMapping.Store = true
	docMapping.AddFieldMappingsAt("genre", genreMapping)

	yearMapping := bleve.NewNumericFieldMapping()
	yearMapping.Store = true
	docMapping.AddFieldMappingsAt("pub_year", yearMapping)

	ratingsCountMapping := bleve.NewNumericFieldMapping()
	ratingsCountMapping.Store = true
	docMapping.AddFieldMappingsAt("ratings_count", ratingsCountMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
