package jobs

import (
	"context"
	"fmt"

	"github.com/mariana/linguaflash/internal/services"
)

// ProvisionJob runs one idempotent card-provisioning pass for a user in the
// background. Re-running a failed job is always safe.
type ProvisionJob struct {
	Service  services.ProvisionService
	UserID   int64
	Language string
	Level    string
}

func (j *ProvisionJob) Name() string {
	return fmt.Sprintf("provision user=%d %s/%s", j.UserID, j.Language, j.Level)
}

func (j *ProvisionJob) Run(ctx context.Context) error {
	_, err := j.Service.ProvisionUser(ctx, j.UserID, j.Language, j.Level)
	return err
}
