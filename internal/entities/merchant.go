package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Merchant represents a merchant document in the merchants collection
type Merchant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StoreID      string             `bson:"storeID" json:"storeID"`
	MerchantName string             `bson:"merchantName" json:"merchantName"`
	Email        string             `bson:"email" json:"email"`
	Commission   float64            `bson:"commission" json:"commission"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
