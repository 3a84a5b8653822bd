package tests

import (
	"context"

	activerecord "github.com/jay-hwang/active-record"
)

// Schema houses, humans and the motorcycles they own.
//
//	Motorcycle belongs to Human through owner_id, Human belongs to House through house_id.
//	Amber (human 5) has no house and no motorcycles.
const Schema = `
CREATE TABLE houses (
  id INTEGER PRIMARY KEY,
  address VARCHAR(255) NOT NULL,
  built_at TEXT
);

CREATE TABLE humans (
  id INTEGER PRIMARY KEY,
  fname VARCHAR(255) NOT NULL,
  lname VARCHAR(255) NOT NULL,
  house_id INTEGER,

  FOREIGN KEY(house_id) REFERENCES houses(id)
);

CREATE TABLE motorcycles (
  id INTEGER PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  owner_id INTEGER,

  FOREIGN KEY(owner_id) REFERENCES humans(id)
);

INSERT INTO houses (id, address, built_at) VALUES
  (1, '100 Market Street', '1998-04-02 10:00:00'),
  (2, '26th and Guerrero', NULL);

INSERT INTO humans (id, fname, lname, house_id) VALUES
  (1, 'John', 'Doe', 1),
  (2, 'Kelly', 'Smith', 1),
  (3, 'Ned', 'Ruggeri', 2),
  (4, 'Catherine', 'Eggers', 2),
  (5, 'Amber', 'Weir', NULL);

INSERT INTO motorcycles (id, name, owner_id) VALUES
  (1, 'Yamaha R1', 1),
  (2, 'Suzuki Hayabusa', 2),
  (3, 'Honda CBR600rr', 2),
  (4, 'Kawasaki Ninja', 3),
  (5, 'Ducati Panigale', 4);
`

// Models the fixture record types, finalized
type Models struct {
	Motorcycle *activerecord.Model
	Human      *activerecord.Model
	House      *activerecord.Model
}

// DeclareModels registers the fixture record types and their associations:
//
//	Motorcycle belongs_to human (owner_id), has_one_through home (human => house)
//	Human      has_many motorcycles (owner_id), belongs_to house
//	House      has_many humans
func DeclareModels(ctx context.Context, db *activerecord.DB) (Models, error) {
	models := Models{
		Motorcycle: db.Model("Motorcycle"),
		Human:      db.Model("Human", activerecord.WithTable("humans")),
		House:      db.Model("House"),
	}

	models.Motorcycle.BelongsTo("human", activerecord.ForeignKey("owner_id"))
	if _, err := models.Motorcycle.HasOneThrough("home", "human", "house"); err != nil {
		return models, err
	}

	models.Human.HasMany("motorcycles", activerecord.ForeignKey("owner_id"))
	models.Human.BelongsTo("house")

	models.House.HasMany("humans")

	for _, model := range []*activerecord.Model{models.Motorcycle, models.Human, models.House} {
		if err := model.Finalize(ctx); err != nil {
			return models, err
		}
	}
	return models, nil
}
