package allocator

import "github.com/jakechorley/seat-arranger/pkg/core/model"

// categoryPools holds the unlocked population split into shuffled queues by category
type categoryPools struct {
	male        []model.Individual
	female      []model.Individual
	unspecified []model.Individual
}

// newCategoryPools partitions the pool by category and shuffles every queue
func newCategoryPools(pool []model.Individual, shuffler Shuffler) *categoryPools {
	pools := &categoryPools{}
	for _, individual := range pool {
		switch individual.Category {
		case model.CategoryMale:
			pools.male = append(pools.male, individual)
		case model.CategoryFemale:
			pools.female = append(pools.female, individual)
		default:
			pools.unspecified = append(pools.unspecified, individual)
		}
	}

	shuffleIndividuals(pools.male, shuffler)
	shuffleIndividuals(pools.female, shuffler)
	shuffleIndividuals(pools.unspecified, shuffler)

	return pools
}

// all returns every queue concatenated, in male, female, unspecified order
func (p *categoryPools) all() []model.Individual {
	all := make([]model.Individual, 0, p.size())
	all = append(all, p.male...)
	all = append(all, p.female...)
	all = append(all, p.unspecified...)
	return all
}

func (p *categoryPools) size() int {
	return len(p.male) + len(p.female) + len(p.unspecified)
}

// shuffleIndividuals performs an unbiased Fisher-Yates shuffle through the shuffler
func shuffleIndividuals(individuals []model.Individual, shuffler Shuffler) {
	if shuffler == nil || len(individuals) < 2 {
		return
	}
	shuffler.Shuffle(len(individuals), func(i, j int) {
		individuals[i], individuals[j] = individuals[j], individuals[i]
	})
}
