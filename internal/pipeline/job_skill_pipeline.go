package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skilltrack/internal/extraction"
	"skilltrack/internal/nlp"
	"skilltrack/internal/pkg/workerpool"
	"skilltrack/internal/repository"
	"skilltrack/internal/vocab"

	"github.com/google/uuid"
)

// JobSkillPipeline walks jobs that have no skill links yet, runs the
// extraction pipeline over their descriptions and persists the links.
// Unmatched candidates become new canonical skills so the vocabulary
// grows with the job stream.
type JobSkillPipeline struct {
	jobs   repository.JobRepository
	skills repository.SkillRepository
	proc   *extraction.Service
	lookup *vocab.Lookup
	models *nlp.Provider
	log    *log.Logger
	limit  int
}

func NewJobSkillPipeline(
	jobs repository.JobRepository,
	skills repository.SkillRepository,
	proc *extraction.Service,
	lookup *vocab.Lookup,
	models *nlp.Provider,
	logger *log.Logger,
) *JobSkillPipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &JobSkillPipeline{
		jobs:   jobs,
		skills: skills,
		proc:   proc,
		lookup: lookup,
		models: models,
		log:    logger,
		limit:  100,
	}
}

type RunParams struct {
	Workers int
	Limit   int
}

// Run processes every pending job in pages. A failed job is logged and
// skipped; the run only aborts on a store error or a cancelled context.
func (p *JobSkillPipeline) Run(ctx context.Context, params RunParams) error {
	if p == nil || p.jobs == nil || p.skills == nil || p.proc == nil {
		return nil
	}
	workers := params.Workers
	if workers <= 0 {
		workers = 4
	}
	limit := params.Limit
	if limit <= 0 {
		limit = p.limit
	}

	start := time.Now()
	var processed, failed, created int

	// Jobs that gain links drop out of the pending query, so the offset
	// only has to move past jobs that stayed pending (skipped, failed or
	// linked to nothing). That way one run drains the whole backlog.
	offset := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		batch, err := p.jobs.ListJobsWithoutSkills(ctx, limit, offset)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		pool := workerpool.New(workers, workers*2)
		results := pool.Run(ctx)

		outcomes := make(chan jobOutcome, len(batch))
		for _, j := range batch {
			j := j
			pool.Submit(func(ctx context.Context) error {
				out, err := p.processJob(ctx, j)
				outcomes <- out
				return err
			})
		}
		pool.Close()

		for r := range results {
			processed++
			if r.Err != nil {
				failed++
			}
		}
		close(outcomes)
		pending := 0
		for o := range outcomes {
			created += o.created
			if !o.linked {
				pending++
			}
		}

		offset += pending
	}

	if created > 0 {
		p.lookup.Refresh(ctx)
		p.models.Reset()
	}

	p.log.Printf("pipeline=job_skills status=finished processed=%d failed=%d skills_created=%d duration=%s",
		processed, failed, created, time.Since(start).Round(time.Millisecond))
	return nil
}

// jobOutcome reports what one job did to the pending set: created is
// the number of canonical skills minted for unmatched candidates and
// linked is whether the job gained at least one skill link.
type jobOutcome struct {
	created int
	linked  bool
}

// processJob extracts skills from one job and links them.
func (p *JobSkillPipeline) processJob(ctx context.Context, j repository.JobForExtraction) (jobOutcome, error) {
	start := time.Now()
	var out jobOutcome

	text := strings.TrimSpace(j.Description)
	if text == "" {
		text = strings.TrimSpace(j.Title)
	}

	res := p.proc.ProcessJobDescription(ctx, text)
	if !res.Success {
		if res.Kind == extraction.FailEmptyInput {
			p.log.Printf("pipeline=job_skills status=skipped job_id=%s reason=empty", j.ID)
			return out, nil
		}
		p.log.Printf("pipeline=job_skills status=error job_id=%s kind=%s err=%s", j.ID, res.Kind, res.Error)
		return out, fmt.Errorf("process job %s: %s", j.ID, res.Error)
	}

	ids := make([]uuid.UUID, 0, len(res.Normalized)+len(res.Unmatched))
	for _, s := range res.Normalized {
		ids = append(ids, s.ID)
	}

	for _, name := range res.Unmatched {
		s, err := p.skills.CreateSkill(ctx, name, nil)
		if err != nil {
			p.log.Printf("pipeline=job_skills status=skill_create_failed job_id=%s name=%q err=%v", j.ID, name, err)
			continue
		}
		out.created++
		ids = append(ids, s.ID)
	}

	if err := p.jobs.LinkSkills(ctx, j.ID, ids); err != nil {
		p.log.Printf("pipeline=job_skills status=link_failed job_id=%s skills=%d err=%v", j.ID, len(ids), err)
		return out, err
	}
	out.linked = len(ids) > 0

	p.log.Printf("pipeline=job_skills status=ok job_id=%s skills=%d created=%d duration=%s",
		j.ID, len(ids), out.created, time.Since(start).Round(time.Millisecond))
	return out, nil
}
