// Package docstore is a JSONB document store on Postgres with the access
// shape of a partitioned document database: named collections with a
// declared partition-key attribute, point reads and writes addressed by
// (id, partition), and parameterized queries that may scan across
// partitions.
package docstore

// Collection names. Tables are provisioned on first use; the base
// migration pre-creates the known set.
const (
	CollectionRoutes             = "routes"
	CollectionLeads              = "leads"
	CollectionDefaultTrips       = "default_trips"
	CollectionTripTemplates      = "trip_templates"
	CollectionRouteCards         = "route_cards"
	CollectionCities             = "cities"
	CollectionCountries          = "countries"
	CollectionActivities         = "activities"
	CollectionAccommodationTypes = "accommodation_types"
)

// partitionKeys declares which document attribute routes each collection.
// Unlisted collections partition by the document id.
var partitionKeys = map[string]string{
	CollectionDefaultTrips:  "region",
	CollectionTripTemplates: "region",
}

// PartitionKey returns the partition attribute for a collection.
func PartitionKey(collection string) string {
	if pk, ok := partitionKeys[collection]; ok {
		return pk
	}
	return "id"
}

func tableName(collection string) string {
	return "doc_" + collection
}
