package driver

// Each upsert below is a single Cypher statement so the whole merge chain
// commits in one transaction. Re-running a statement with identical
// parameters matches the existing nodes/edges and changes nothing.
const (
	UpsertFileQuery = `
		MERGE (f:File {file_id: $file_id})
		SET f.name = $name,
			f.url = $url,
			f.description = $description
		RETURN f.file_id AS file_id
	`

	// The owning File must already exist; with no MATCH row the MERGEs do not
	// run and zero records come back, which the writer reports as a miss.
	UpsertChunkQuery = `
		MATCH (f:File {name: $file_name})
		MERGE (c:Chunk {chunk_id: $chunk_id})
		SET c.text = $text,
			c.source = $source
		MERGE (f)-[:HAS_CHUNK]->(c)
		RETURN c.chunk_id AS chunk_id
	`

	// RELATION edges merge on the full property tuple: the same entity pair
	// may carry many edges as long as (type, triplet_id) differ.
	UpsertTripletQuery = `
		MATCH (c:Chunk {chunk_id: $chunk_id})
		MERGE (s:Entity {name: $subject})
		MERGE (o:Entity {name: $object})
		MERGE (s)-[r:RELATION {type: $relation, triplet_id: $triplet_id, source: $source}]->(o)
		MERGE (c)-[:CONTAINS_ENTITY]->(s)
		MERGE (c)-[:CONTAINS_ENTITY]->(o)
		RETURN c.chunk_id AS chunk_id
	`

	SearchEntitiesQuery = `
		CALL db.index.fulltext.queryNodes('entityIndex', $q) YIELD node, score
		RETURN node.name AS entity, score
		ORDER BY score DESC LIMIT $limit
	`

	// Fact edges carry their relation text in the r.type property; the Cypher
	// type token (RELATION, CONTAINS_ENTITY, ...) is only the fallback for
	// edges without one.
	ExpandEntityQuery = `
		MATCH (e:Entity {name: $entity})-[r]-(n)
		RETURN e.name AS source, coalesce(r.type, type(r)) AS relation, n.name AS target, r.source AS provenance
		LIMIT $limit
	`

	ChunksForEntityQuery = `
		MATCH (c:Chunk)-[:CONTAINS_ENTITY]->(e:Entity {name: $entity})
		RETURN c.chunk_id AS chunk_id, c.text AS text, c.source AS source
		LIMIT $limit
	`
)
