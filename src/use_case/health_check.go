package use_case

import (
	"context"
	"fmt"
)

func (u UseCase) HealthCheck(ctx context.Context) error {

	err := u.directoryRepository.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("directoryRepository.HealthCheck: %w", err)
	}

	err = u.identityRepository.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("identityRepository.HealthCheck: %w", err)
	}

	err = u.sessionRepository.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("sessionRepository.HealthCheck: %w", err)
	}

	if u.activityRepository != nil {
		err = u.activityRepository.HealthCheck(ctx)
		if err != nil {
			return fmt.Errorf("activityRepository.HealthCheck: %w", err)
		}
	}

	return nil
}
