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
	"fmt"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/notify"
)

// Operation names carried by the operation attribute.
const (
	OperationCreate             = "create"
	OperationUpdate             = "update"
	OperationDelete             = "delete"
	OperationCreateRelationship = "create_relationship"
	OperationDeleteRelationship = "delete_relationship"
)

// notification is composed before a mutation so attribute errors leave the graph untouched.
type notification struct {
	topic      string
	attributes notify.Attributes
	groupID    string
	dedupID    string
}

// prepareNotification returns nil when the call has no topic to publish to.
func prepareNotification(eff config.Effective, operation string) (*notification, error) {
	if eff.SNSArn == "" {
		return nil, nil
	}

	attrs, err := notify.Compose(eff.DefaultAttributes, eff.CallAttributes, operation)
	if err != nil {
		return nil, fmt.Errorf("compose notification: %w", err)
	}

	return &notification{
		topic:      eff.SNSArn,
		attributes: attrs,
		groupID:    eff.FIFOGroupID,
		dedupID:    eff.FIFODeduplicationID,
	}, nil
}

// publish sends a prepared notification. The returned error is a warning:
// the mutation it describes has already been committed.
func (a *Adapter) publish(ctx context.Context, n *notification, body any) error {
	if n == nil {
		return nil
	}

	msg, err := notify.NewMessage(n.topic, body, n.attributes, n.groupID, n.dedupID)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPublishFailure, err)
	} else {
		err = notify.Send(ctx, a.publisher, msg)
	}

	if err != nil {
		a.log(ctx).Warn().Err(err).Str("topic", n.topic).Msg("notification not delivered")

		return err
	}

	a.log(ctx).Debug().Str("topic", n.topic).Strs("attributes", n.attributes.Names()).Msg("notification published")

	return nil
}
