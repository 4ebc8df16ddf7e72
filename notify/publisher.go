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

//go:generate mockgen -package mock -destination mock/publisher.go . Publisher

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const fifoSuffix = ".fifo"

// Message is a composed notification.
type Message struct {
	Topic           string
	Body            string
	Attributes      Attributes
	GroupID         string
	DeduplicationID string
}

// Publisher delivers messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// NewMessage encodes body as JSON and fills in FIFO ids for FIFO topics.
func NewMessage(topic string, body any, attrs Attributes, groupID, deduplicationID string) (Message, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return Message{}, fmt.Errorf("marshal message body: %w", err)
	}

	msg := Message{
		Topic:      topic,
		Body:       string(encoded),
		Attributes: attrs,
	}

	if IsFIFO(topic) {
		msg.GroupID = groupID
		msg.DeduplicationID = deduplicationID

		if msg.DeduplicationID == "" {
			msg.DeduplicationID = uuid.NewString()
		}
	}

	return msg, nil
}

// IsFIFO reports whether the topic is a FIFO topic.
func IsFIFO(topic string) bool {
	return strings.HasSuffix(topic, fifoSuffix)
}

// Send publishes msg through p. It does nothing when no topic is set or p is nil.
func Send(ctx context.Context, p Publisher, msg Message) error {
	if msg.Topic == "" || p == nil {
		return nil
	}

	if err := p.Publish(ctx, msg); err != nil {
		return fmt.Errorf("%w to %s: %w", ErrPublishFailure, msg.Topic, err)
	}

	return nil
}
