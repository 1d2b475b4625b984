package tutor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprenda/tutor"
	"github.com/aprenda/tutor/pkg/domain"
)

func TestEngine_LearningConversation(t *testing.T) {
	engine, err := tutor.New()
	require.NoError(t, err)
	ctx := context.Background()

	reply, state, err := engine.LearningTurn(ctx, "s1", "verb_to_be", "oi")
	require.NoError(t, err)
	assert.Contains(t, reply, "Verbo To Be")
	assert.False(t, state.IsFirstMessage)
	assert.Equal(t, "verb_to_be", state.TopicName)

	// State persists across calls: the second turn gets feedback, not the intro.
	reply, state, err = engine.LearningTurn(ctx, "s1", "", "I am happy")
	require.NoError(t, err)
	assert.NotContains(t, reply, "Você escolheu Aprendizado")
	assert.Contains(t, reply, "[EN]I am happy[/EN]")
	assert.Equal(t, "student_answer", state.LastStudentIntent)

	// The topic sticks to the session once set.
	_, state, err = engine.LearningTurn(ctx, "s1", "", "I am tired")
	require.NoError(t, err)
	assert.Equal(t, "verb_to_be", state.TopicName)
}

func TestEngine_LearningDefaultsTopic(t *testing.T) {
	engine, err := tutor.New()
	require.NoError(t, err)

	_, state, err := engine.LearningTurn(context.Background(), "fresh", "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "verb_to_be", state.TopicName)
}

func TestEngine_LearningUnknownTopic(t *testing.T) {
	engine, err := tutor.New()
	require.NoError(t, err)

	_, _, err = engine.LearningTurn(context.Background(), "s1", "quantum_grammar", "oi")
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)
}

func TestEngine_SimulatorConversation(t *testing.T) {
	engine, err := tutor.New()
	require.NoError(t, err)
	ctx := context.Background()

	reply, state, err := engine.SimulatorTurn(ctx, "hotel-1", "hotel", "Good evening")
	require.NoError(t, err)
	assert.Contains(t, reply, "Sunset Hotel")
	assert.Equal(t, domain.StageGreeting, state.Stage)

	_, state, err = engine.SimulatorTurn(ctx, "hotel-1", "hotel", "My name is Wesley")
	require.NoError(t, err)
	assert.Equal(t, "Wesley", state.Slots.Name)
	assert.Equal(t, domain.StageReservationDetails, state.Stage)

	_, state, err = engine.SimulatorTurn(ctx, "hotel-1", "hotel", "Yes, I have a reservation")
	require.NoError(t, err)
	require.NotNil(t, state.Slots.Reservation)
	assert.True(t, *state.Slots.Reservation)
	assert.Equal(t, domain.StageIDAndPayment, state.Stage)
}

func TestEngine_Validate(t *testing.T) {
	engine, err := tutor.New()
	require.NoError(t, err)

	t.Run("simulator rewrites teaching offers", func(t *testing.T) {
		text, err := engine.Validate("Let me teach you some grammar.", "", true)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToLower(text), "teach")
	})

	t.Run("learning appends a question", func(t *testing.T) {
		text, err := engine.Validate("Muito bem.", "verb_to_be", false)
		require.NoError(t, err)
		assert.Contains(t, text, "Como você está hoje?")
	})

	t.Run("learning rejects unknown topic", func(t *testing.T) {
		_, err := engine.Validate("Muito bem.", "nope", false)
		assert.ErrorIs(t, err, domain.ErrUnknownTopic)
	})
}

func TestEngine_Topics(t *testing.T) {
	engine, err := tutor.New()
	require.NoError(t, err)

	topics := engine.Topics()
	require.NotEmpty(t, topics)
	assert.Equal(t, "verb_to_be", topics[0].ID)
	for _, topic := range topics {
		assert.NotEmpty(t, topic.Title)
	}
}
