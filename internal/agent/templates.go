package agent

// queryTemplate is one parameterized Cypher template for a question type.
// Entities are always bound through the $terms parameter; they never appear
// in the query text itself.
type queryTemplate struct {
	// Filtered matches nodes whose name properties contain any entity term.
	Filtered string

	// Unfiltered is used when no entities were extracted. Empty means the
	// template cannot run without entities and the pipeline proceeds with
	// an empty result set instead.
	Unfiltered string
}

// queryTemplates maps each question type to its Cypher template. Adding a
// question type is a data addition here, not a control-flow change.
var queryTemplates = map[QuestionType]queryTemplate{
	QuestionGeneDisease: {
		Filtered: `MATCH (g:Gene)-[:ASSOCIATED_WITH]->(d:Disease)
WHERE any(term IN $terms WHERE toLower(d.disease_name) CONTAINS toLower(term)
	OR toLower(g.gene_name) CONTAINS toLower(term))
RETURN g.gene_name AS gene, d.disease_name AS disease
LIMIT $limit`,
		Unfiltered: `MATCH (g:Gene)-[:ASSOCIATED_WITH]->(d:Disease)
RETURN g.gene_name AS gene, d.disease_name AS disease
LIMIT $limit`,
	},
	QuestionDrugTreatment: {
		Filtered: `MATCH (dr:Drug)-[:TREATS]->(d:Disease)
WHERE any(term IN $terms WHERE toLower(d.disease_name) CONTAINS toLower(term)
	OR toLower(dr.drug_name) CONTAINS toLower(term))
RETURN dr.drug_name AS drug, d.disease_name AS disease
LIMIT $limit`,
		Unfiltered: `MATCH (dr:Drug)-[:TREATS]->(d:Disease)
RETURN dr.drug_name AS drug, d.disease_name AS disease
LIMIT $limit`,
	},
	QuestionGeneProtein: {
		Filtered: `MATCH (g:Gene)-[:ENCODES]->(p:Protein)
WHERE any(term IN $terms WHERE toLower(g.gene_name) CONTAINS toLower(term)
	OR toLower(p.protein_name) CONTAINS toLower(term))
RETURN g.gene_name AS gene, p.protein_name AS protein
LIMIT $limit`,
		Unfiltered: `MATCH (g:Gene)-[:ENCODES]->(p:Protein)
RETURN g.gene_name AS gene, p.protein_name AS protein
LIMIT $limit`,
	},
	QuestionPathway: {
		Filtered: `MATCH (n)-[:PARTICIPATES_IN]->(pw:Pathway)
WHERE any(term IN $terms WHERE toLower(pw.pathway_name) CONTAINS toLower(term)
	OR any(key IN keys(n) WHERE toLower(toString(n[key])) CONTAINS toLower(term)))
RETURN labels(n) AS participant_labels, properties(n) AS participant, pw.pathway_name AS pathway
LIMIT $limit`,
		Unfiltered: `MATCH (n)-[:PARTICIPATES_IN]->(pw:Pathway)
RETURN labels(n) AS participant_labels, properties(n) AS participant, pw.pathway_name AS pathway
LIMIT $limit`,
	},
	// The unknown sentinel falls back to a free-text search across all node
	// types by entity term. It has no unfiltered form: with nothing to
	// search for, the pipeline degrades to an empty result set.
	QuestionUnknown: {
		Filtered: `MATCH (n)
WHERE any(term IN $terms WHERE any(key IN keys(n)
	WHERE toLower(toString(n[key])) CONTAINS toLower(term)))
RETURN labels(n) AS labels, properties(n) AS properties
LIMIT $limit`,
	},
}

// templateFor selects the query template for a question type, falling back
// to the free-text template for anything outside the map.
func templateFor(t QuestionType) queryTemplate {
	if tpl, ok := queryTemplates[t]; ok {
		return tpl
	}
	return queryTemplates[QuestionUnknown]
}
