package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// customerDocument es la forma persistida. Los campos nil no se escriben.
type customerDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          *string            `bson:"nome,omitempty"`
	NationalID    *string            `bson:"cpf,omitempty"`
	BranchCode    *string            `bson:"agencia,omitempty"`
	AccountNumber *string            `bson:"conta,omitempty"`
	BankName      *string            `bson:"nomeBanco,omitempty"`
}

// CustomerRepo implementación de CustomerRepository sobre una colección MongoDB.
type CustomerRepo struct {
	coll   *mongo.Collection
	tracer opTracer
}

// NewCustomerRepository construye el adaptador sobre la colección de clientes.
func NewCustomerRepository(coll *mongo.Collection, opts ...Option) *CustomerRepo {
	r := &CustomerRepo{coll: coll, tracer: newOpTracer(coll)}
	for _, o := range opts {
		o(r)
	}
	return r
}

// FindAll devuelve todos los clientes en el orden natural de la colección.
func (r *CustomerRepo) FindAll(ctx context.Context) (out []*entity.Customer, err error) {
	ctx, end := r.tracer.trace(ctx, "find")
	defer func() { end(err) }()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []customerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out = make([]*entity.Customer, 0, len(docs))
	for i := range docs {
		out = append(out, toEntity(&docs[i]))
	}
	return out, nil
}

// Insert persiste un nuevo cliente y escribe en customer.ID el ObjectID asignado.
func (r *CustomerRepo) Insert(ctx context.Context, customer *entity.Customer) (err error) {
	ctx, end := r.tracer.trace(ctx, "insertOne")
	defer func() { end(err) }()

	doc := toDocument(customer)
	doc.ID = primitive.NewObjectID()
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	customer.ID = doc.ID.Hex()
	return nil
}

// FindByID obtiene una copia del cliente; domain.ErrNotFound si no existe.
func (r *CustomerRepo) FindByID(ctx context.Context, id string) (_ *entity.Customer, err error) {
	ctx, end := r.tracer.trace(ctx, "findOne")
	defer func() { end(err) }()

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc customerDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return toEntity(&doc), nil
}

// ReplaceByID sustituye el documento completo y devuelve la versión posterior al reemplazo.
func (r *CustomerRepo) ReplaceByID(ctx context.Context, id string, customer *entity.Customer) (_ *entity.Customer, err error) {
	ctx, end := r.tracer.trace(ctx, "findOneAndReplace")
	defer func() { end(err) }()

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	replacement := toDocument(customer)
	replacement.ID = primitive.NilObjectID

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var doc customerDocument
	err = r.coll.FindOneAndReplace(ctx, bson.D{{Key: "_id", Value: oid}}, replacement, opts).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	return toEntity(&doc), nil
}

// DeleteByID elimina el documento; domain.ErrNotFound si no se borró nada.
func (r *CustomerRepo) DeleteByID(ctx context.Context, id string) (err error) {
	ctx, end := r.tracer.trace(ctx, "deleteOne")
	defer func() { end(err) }()

	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", domain.ErrInvalidID, id, err)
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

func toDocument(c *entity.Customer) customerDocument {
	return customerDocument{
		Name:          c.Name,
		NationalID:    c.NationalID,
		BranchCode:    c.BranchCode,
		AccountNumber: c.AccountNumber,
		BankName:      c.BankName,
	}
}

func toEntity(d *customerDocument) *entity.Customer {
	return &entity.Customer{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		NationalID:    d.NationalID,
		BranchCode:    d.BranchCode,
		AccountNumber: d.AccountNumber,
		BankName:      d.BankName,
	}
}
