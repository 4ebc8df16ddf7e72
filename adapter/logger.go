// Copyright © 2023 Meroxa, Inc. & Yalantis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package adapter

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

const (
	runModeEnv      = "RUN_MODE"
	runModeUnitTest = "unittest"
)

func defaultLogger() zerolog.Logger {
	if os.Getenv(runModeEnv) == runModeUnitTest {
		return zerolog.Nop()
	}

	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// log returns the logger carried by ctx, falling back to the adapter's own.
func (a *Adapter) log(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}

	return &a.logger
}
