package importer

import (
	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/wire"
)

// FromExport rebuilds the learn sets of an export file under fresh ids,
// owned by owner. Exercises without question or answer are skipped and
// negative frequencies become 0.
func FromExport(data wire.ExportData, owner string) []*learnset.LearnSet {
	sets := make([]*learnset.LearnSet, 0, len(data.LearnSets))

	for _, es := range data.LearnSets {
		ls := learnset.New(es.LearnSet.Title, es.LearnSet.Subject, owner)
		ls.Description = es.LearnSet.Description
		ls.Class = es.LearnSet.Class
		if es.LearnSet.Grade != "" {
			ls.Grade = es.LearnSet.Grade
		}
		if es.LearnSet.Language != "" {
			ls.Language = es.LearnSet.Language
		}

		for _, e := range es.Exercises {
			if err := ls.AddExercise(e.Question, e.Answer, e.Answers...); err != nil {
				continue
			}
			last := &ls.Exercises[len(ls.Exercises)-1]
			last.Frequency = max(e.Frequency, 0)
			last.AutoCheck = e.AutoCheck
		}
		sets = append(sets, ls)
	}
	return sets
}
