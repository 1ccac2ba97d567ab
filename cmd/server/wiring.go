package main

import (
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tawitawi/provincial-portal/internal/api"
	"github.com/tawitawi/provincial-portal/internal/api/handler"
	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/core/service"
	mongorepo "github.com/tawitawi/provincial-portal/internal/infrastructure/db/mongo"
)

// subCollections collects what each nested collection contributes to the
// rest of the wiring.
type subCollections struct {
	db           *mongo.Database
	transactions bool
	activity     ports.ActivityRecorder
	log          zerolog.Logger

	handlers []api.SubCollection
	indexed  []mongorepo.IndexedRepository
	cleaners map[domain.OwnerKind][]ports.OwnerCleaner
}

func newSubCollections(db *mongo.Database, transactions bool, activity ports.ActivityRecorder, log zerolog.Logger) *subCollections {
	return &subCollections{
		db:           db,
		transactions: transactions,
		activity:     activity,
		log:          log,
		cleaners:     make(map[domain.OwnerKind][]ports.OwnerCleaner),
	}
}

// add wires one nested collection: repository, service and handler.
func add[T domain.SubItem](sc *subCollections, kind domain.ItemKind, owner service.OwnerCheck, authorize service.OwnerAuthorizer) *mongorepo.SubItemRepository[T] {
	repo := mongorepo.NewSubItemRepository[T](sc.db, kind, sc.transactions, sc.log)
	svc := service.NewSubItemService[T](kind, repo, owner, authorize, sc.activity, sc.log)

	sc.handlers = append(sc.handlers, handler.NewSubItemHandler[T](svc))
	sc.indexed = append(sc.indexed, repo)
	sc.cleaners[kind.Owner] = append(sc.cleaners[kind.Owner], repo)
	return repo
}

// profileCollections are the repositories the profile service reads from.
type profileCollections struct {
	servicePeriods *mongorepo.SubItemRepository[domain.ServicePeriod]
	counters       service.ProfileCounters
}

func wireSubCollections(sc *subCollections, profiles, municipalities, directories service.OwnerCheck) profileCollections {
	periods := add[domain.ServicePeriod](sc, domain.KindServicePeriods, profiles, service.ProvinceWriter)
	projects := add[domain.Project](sc, domain.KindProjects, profiles, service.ProvinceWriter)
	legislation := add[domain.Legislation](sc, domain.KindLegislation, profiles, service.ProvinceWriter)
	programs := add[domain.Program](sc, domain.KindPrograms, profiles, service.ProvinceWriter)
	achievements := add[domain.Achievement](sc, domain.KindAchievements, profiles, service.ProvinceWriter)
	education := add[domain.Education](sc, domain.KindEducation, profiles, service.ProvinceWriter)
	add[domain.GalleryImage](sc, domain.KindProfileGallery, profiles, service.ProvinceWriter)
	add[domain.CareerPosition](sc, domain.KindPositions, profiles, service.ProvinceWriter)

	add[domain.MunicipalOfficial](sc, domain.KindOfficials, municipalities, service.MunicipalityWriter)
	add[domain.Barangay](sc, domain.KindBarangays, municipalities, service.MunicipalityWriter)
	add[domain.MunicipalService](sc, domain.KindMunicipalServices, municipalities, service.MunicipalityWriter)
	add[domain.TourismSpot](sc, domain.KindTourism, municipalities, service.MunicipalityWriter)
	add[domain.MunicipalNews](sc, domain.KindMunicipalNews, municipalities, service.MunicipalityWriter)
	add[domain.GalleryImage](sc, domain.KindMunicipalGallery, municipalities, service.MunicipalityWriter)

	add[domain.DirectoryPerson](sc, domain.KindDirectoryPeople, directories, service.ProvinceWriter)

	return profileCollections{
		servicePeriods: periods,
		counters: service.ProfileCounters{
			Projects:    projects,
			Awards:      achievements,
			Legislation: legislation,
			Programs:    programs,
			Education:   education,
		},
	}
}
