package analyzer

import (
	"regexp"

	"springlens/internal/model"
)

// Classification works on the raw file text, before any structural
// extraction. The priority order is fixed: a class carrying both a
// controller and a service marker is a controller.
var (
	controllerMarker = regexp.MustCompile(`@(?:RestController|Controller)\b`)
	serviceMarker    = regexp.MustCompile(`@(?:Service|Component)\b`)
	repositoryMarker = regexp.MustCompile(`@Repository\b`)
	repositoryParent = regexp.MustCompile(`extends\s+(?:JpaRepository|CrudRepository|MongoRepository|PagingAndSortingRepository)\b`)
	entityMarker     = regexp.MustCompile(`@(?:Entity|Document|Table)\b`)
)

// Classify assigns the architectural role of a source file.
func Classify(content string) model.Kind {
	switch {
	case controllerMarker.MatchString(content):
		return model.KindController
	case serviceMarker.MatchString(content):
		return model.KindService
	case repositoryMarker.MatchString(content) || repositoryParent.MatchString(content):
		return model.KindRepository
	case entityMarker.MatchString(content):
		return model.KindEntity
	}
	return model.KindUnknown
}
