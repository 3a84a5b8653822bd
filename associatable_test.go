package activerecord_test

import (
	"context"
	"errors"
	"testing"

	activerecord "github.com/jay-hwang/active-record"
	"github.com/jay-hwang/active-record/utils/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBelongsToOptions(t *testing.T) {
	options := activerecord.NewBelongsToOptions("house")
	assert.Equal(t, "id", options.PrimaryKey)
	assert.Equal(t, "house_id", options.ForeignKey)
	assert.Equal(t, "House", options.ClassName)
	assert.Equal(t, activerecord.BelongsTo, options.Kind())

	options = activerecord.NewBelongsToOptions("owner",
		activerecord.ForeignKey("human_id"),
		activerecord.ClassName("Human"),
		activerecord.PrimaryKey("human_id"),
	)
	assert.Equal(t, "human_id", options.PrimaryKey)
	assert.Equal(t, "human_id", options.ForeignKey)
	assert.Equal(t, "Human", options.ClassName)
}

func TestHasManyOptions(t *testing.T) {
	options := activerecord.NewHasManyOptions("motorcycles", "Human")
	assert.Equal(t, "id", options.PrimaryKey)
	assert.Equal(t, "human_id", options.ForeignKey)
	assert.Equal(t, "Motorcycle", options.ClassName)
	assert.Equal(t, activerecord.HasMany, options.Kind())

	options = activerecord.NewHasManyOptions("motorcycles", "Human",
		activerecord.ForeignKey("owner_id"),
		activerecord.ClassName("Bike"),
		activerecord.PrimaryKey("human_id"),
	)
	assert.Equal(t, "human_id", options.PrimaryKey)
	assert.Equal(t, "owner_id", options.ForeignKey)
	assert.Equal(t, "Bike", options.ClassName)
}

func TestOptionsModelClass(t *testing.T) {
	_, db, _, models := setup(t)

	belongsTo := activerecord.NewBelongsToOptions("human")
	model, err := belongsTo.ModelClass(db)
	require.NoError(t, err)
	assert.Same(t, models.Human, model)

	table, err := belongsTo.TableName(db)
	require.NoError(t, err)
	assert.Equal(t, "humans", table)

	hasMany := activerecord.NewHasManyOptions("motorcycles", "Human")
	model, err = hasMany.ModelClass(db)
	require.NoError(t, err)
	assert.Same(t, models.Motorcycle, model)

	table, err = hasMany.TableName(db)
	require.NoError(t, err)
	assert.Equal(t, "motorcycles", table)

	_, err = activerecord.NewBelongsToOptions("unicorn").ModelClass(db)
	assert.True(t, errors.Is(err, activerecord.ErrModelNotFound))
}

func TestBelongsTo(t *testing.T) {
	ctx, _, _, models := setup(t)

	motorcycle, err := models.Motorcycle.Find(ctx, 1)
	require.NoError(t, err)
	assert.True(t, motorcycle.Responds("human"))

	human, err := motorcycle.One(ctx, "human")
	require.NoError(t, err)
	require.NotNil(t, human)
	assert.Same(t, models.Human, human.Model())
	assert.Equal(t, "John", human.String("fname"))

	house, err := human.One(ctx, "house")
	require.NoError(t, err)
	require.NotNil(t, house)
	assert.Equal(t, "100 Market Street", house.String("address"))

	amber, err := models.Human.Find(ctx, 5)
	require.NoError(t, err)
	house, err = amber.One(ctx, "house")
	require.NoError(t, err)
	assert.Nil(t, house)
}

func TestHasMany(t *testing.T) {
	ctx, _, _, models := setup(t)

	kelly, err := models.Human.Find(ctx, 2)
	require.NoError(t, err)
	assert.True(t, kelly.Responds("motorcycles"))

	motorcycles, err := kelly.Many(ctx, "motorcycles")
	require.NoError(t, err)
	require.Len(t, motorcycles, 2)
	assert.Same(t, models.Motorcycle, motorcycles[0].Model())
	assert.Equal(t, "Suzuki Hayabusa", motorcycles[0].String("name"))

	house, err := models.House.Find(ctx, 1)
	require.NoError(t, err)
	humans, err := house.Many(ctx, "humans")
	require.NoError(t, err)
	require.Len(t, humans, 2)
	assert.Equal(t, "John", humans[0].String("fname"))

	amber, err := models.Human.Find(ctx, 5)
	require.NoError(t, err)
	motorcycles, err = amber.Many(ctx, "motorcycles")
	require.NoError(t, err)
	assert.NotNil(t, motorcycles)
	assert.Empty(t, motorcycles)
}

func TestHasManyWithoutPrimaryKey(t *testing.T) {
	ctx, _, recorder, models := setup(t)

	human, err := models.Human.New(ctx, activerecord.Field{Column: "fname", Value: "Unsaved"})
	require.NoError(t, err)

	recorder.Clear()
	motorcycles, err := human.Many(ctx, "motorcycles")
	require.NoError(t, err)
	assert.NotNil(t, motorcycles)
	assert.Empty(t, motorcycles)
	assert.Empty(t, recorder.Statements())
}

func TestWrongResolver(t *testing.T) {
	ctx, _, _, models := setup(t)

	human, err := models.Human.Find(ctx, 1)
	require.NoError(t, err)

	_, err = human.Many(ctx, "house")
	assert.True(t, errors.Is(err, activerecord.ErrUnsupportedRelation))

	_, err = human.One(ctx, "motorcycles")
	assert.True(t, errors.Is(err, activerecord.ErrUnsupportedRelation))

	_, err = human.One(ctx, "pet")
	assert.True(t, errors.Is(err, activerecord.ErrUnknownAssociation))
}

func TestAssocOptions(t *testing.T) {
	ctx := context.Background()
	db, _ := tests.OpenDB(t)

	assert.Empty(t, db.Model("TestClass").AssocOptions())

	models, err := tests.DeclareModels(ctx, db)
	require.NoError(t, err)

	humanOptions, ok := models.Motorcycle.AssocOptions()["human"].(*activerecord.BelongsToOptions)
	require.True(t, ok)
	assert.Equal(t, "id", humanOptions.PrimaryKey)
	assert.Equal(t, "owner_id", humanOptions.ForeignKey)
	assert.Equal(t, "Human", humanOptions.ClassName)

	assert.Contains(t, models.Human.AssocOptions(), "house")
	assert.NotContains(t, models.Motorcycle.AssocOptions(), "house", "declarations should not leak between models")
	assert.NotContains(t, models.House.AssocOptions(), "human")
	assert.Empty(t, db.Model("TestClass").AssocOptions())

	options := models.Motorcycle.AssocOptions()
	delete(options, "human")
	assert.Contains(t, models.Motorcycle.AssocOptions(), "human", "returned map should be a copy")
}

func TestRedeclareAssociation(t *testing.T) {
	ctx, _, _, models := setup(t)

	models.Motorcycle.BelongsTo("human", activerecord.ForeignKey("id"))
	require.NoError(t, models.Motorcycle.Finalize(ctx))

	motorcycle, err := models.Motorcycle.Find(ctx, 5)
	require.NoError(t, err)

	human, err := motorcycle.One(ctx, "human")
	require.NoError(t, err)
	require.NotNil(t, human)
	assert.Equal(t, "Amber", human.String("fname"))
}

func TestDeclaredAfterFinalize(t *testing.T) {
	ctx, _, _, models := setup(t)

	models.House.HasMany("residents", activerecord.ClassName("Human"))
	house, err := models.House.Find(ctx, 1)
	require.NoError(t, err)

	assert.False(t, house.Responds("residents"))
	_, err = house.Many(ctx, "residents")
	assert.True(t, errors.Is(err, activerecord.ErrUnknownAssociation))

	require.NoError(t, models.House.Finalize(ctx))
	residents, err := house.Many(ctx, "residents")
	require.NoError(t, err)
	assert.Len(t, residents, 2)
}

func TestHasOneThrough(t *testing.T) {
	ctx, _, recorder, models := setup(t)

	motorcycle, err := models.Motorcycle.Find(ctx, 1)
	require.NoError(t, err)
	assert.True(t, motorcycle.Responds("home"))

	recorder.Clear()
	house, err := motorcycle.One(ctx, "home")
	require.NoError(t, err)
	require.NotNil(t, house)
	assert.Same(t, models.House, house.Model())
	assert.Equal(t, "100 Market Street", house.String("address"))

	statements := recorder.Statements()
	require.Len(t, statements, 1, "has_one_through should fetch the target in one statement")
	assert.Equal(t,
		"SELECT `houses`.* FROM `houses` INNER JOIN `humans` ON `houses`.`id` = `humans`.`house_id` WHERE `humans`.`id` = ?",
		statements[0].SQL,
	)
	assert.Equal(t, []interface{}{int64(1)}, statements[0].Vars)

	human, err := motorcycle.One(ctx, "human")
	require.NoError(t, err)
	expected, err := human.One(ctx, "house")
	require.NoError(t, err)
	assert.Equal(t, expected.AttributeValues(), house.AttributeValues())
}

func TestHasOneThroughUnresolved(t *testing.T) {
	ctx, _, recorder, models := setup(t)

	t.Run("intermediate without target", func(t *testing.T) {
		motorcycle, err := models.Motorcycle.New(ctx,
			activerecord.Field{Column: "name", Value: "Vespa"},
			activerecord.Field{Column: "owner_id", Value: 5},
		)
		require.NoError(t, err)

		house, err := motorcycle.One(ctx, "home")
		require.NoError(t, err)
		assert.Nil(t, house)
	})

	t.Run("without intermediate", func(t *testing.T) {
		motorcycle, err := models.Motorcycle.New(ctx, activerecord.Field{Column: "name", Value: "Vespa"})
		require.NoError(t, err)

		recorder.Clear()
		house, err := motorcycle.One(ctx, "home")
		require.NoError(t, err)
		assert.Nil(t, house)
		assert.Empty(t, recorder.Statements())
	})
}

func TestHasOneThroughDeclaration(t *testing.T) {
	ctx, _, _, models := setup(t)

	_, err := models.House.HasOneThrough("garage", "owner", "motorcycles")
	assert.True(t, errors.Is(err, activerecord.ErrUnknownAssociation))

	_, err = models.Human.HasOneThrough("first_bike", "motorcycles", "human")
	assert.True(t, errors.Is(err, activerecord.ErrUnsupportedRelation))

	options, err := models.Human.HasOneThrough("neighbor", "house", "mayor")
	require.NoError(t, err)
	assert.Equal(t, activerecord.HasOneThrough, options.Kind())
	require.NoError(t, models.Human.Finalize(ctx))

	john, err := models.Human.Find(ctx, 1)
	require.NoError(t, err)
	_, err = john.One(ctx, "neighbor")
	assert.True(t, errors.Is(err, activerecord.ErrUnknownAssociation), "source resolved at access time")
}

func TestBelongsToCustomPrimaryKey(t *testing.T) {
	ctx, _, recorder, models := setup(t)

	models.Human.BelongsTo("housemate",
		activerecord.PrimaryKey("house_id"),
		activerecord.ForeignKey("house_id"),
		activerecord.ClassName("Human"),
	)
	require.NoError(t, models.Human.Finalize(ctx))

	ned, err := models.Human.Find(ctx, 3)
	require.NoError(t, err)

	recorder.Clear()
	housemate, err := ned.One(ctx, "housemate")
	require.NoError(t, err)
	require.NotNil(t, housemate)
	assert.Equal(t, "Ned", housemate.String("fname"), "first human living in house 2")

	last := recorder.Last()
	assert.Equal(t, "SELECT `humans`.* FROM `humans` WHERE `humans`.`house_id` = ?", last.SQL)
	assert.Equal(t, []interface{}{int64(2)}, last.Vars)

	amber, err := models.Human.Find(ctx, 5)
	require.NoError(t, err)
	recorder.Clear()
	housemate, err = amber.One(ctx, "housemate")
	require.NoError(t, err)
	assert.Nil(t, housemate)
	assert.Empty(t, recorder.Statements())
}

func TestHasManyCustomPrimaryKey(t *testing.T) {
	ctx, _, recorder, models := setup(t)

	models.Human.HasMany("housemates",
		activerecord.PrimaryKey("house_id"),
		activerecord.ForeignKey("house_id"),
		activerecord.ClassName("Human"),
	)
	require.NoError(t, models.Human.Finalize(ctx))

	ned, err := models.Human.Find(ctx, 3)
	require.NoError(t, err)

	recorder.Clear()
	housemates, err := ned.Many(ctx, "housemates")
	require.NoError(t, err)
	require.Len(t, housemates, 2)
	assert.Equal(t, "Ned", housemates[0].String("fname"))
	assert.Equal(t, "Catherine", housemates[1].String("fname"))

	last := recorder.Last()
	assert.Equal(t, "SELECT * FROM `humans` WHERE `house_id` = ?", last.SQL)
	assert.Equal(t, []interface{}{int64(2)}, last.Vars)

	amber, err := models.Human.Find(ctx, 5)
	require.NoError(t, err)
	recorder.Clear()
	housemates, err = amber.Many(ctx, "housemates")
	require.NoError(t, err)
	assert.NotNil(t, housemates)
	assert.Empty(t, housemates)
	assert.Empty(t, recorder.Statements())
}

func TestHasOneThroughUsesFinalizedHops(t *testing.T) {
	ctx, _, _, models := setup(t)

	models.Motorcycle.BelongsTo("human", activerecord.ForeignKey("id"))

	motorcycle, err := models.Motorcycle.Find(ctx, 5)
	require.NoError(t, err)

	human, err := motorcycle.One(ctx, "human")
	require.NoError(t, err)
	require.NotNil(t, human)
	assert.Equal(t, "Catherine", human.String("fname"))

	house, err := motorcycle.One(ctx, "home")
	require.NoError(t, err)
	require.NotNil(t, house)
	assert.Equal(t, "26th and Guerrero", house.String("address"))

	require.NoError(t, models.Motorcycle.Finalize(ctx))

	human, err = motorcycle.One(ctx, "human")
	require.NoError(t, err)
	assert.Equal(t, "Amber", human.String("fname"))

	house, err = motorcycle.One(ctx, "home")
	require.NoError(t, err)
	assert.Nil(t, house, "Amber has no house")
}
