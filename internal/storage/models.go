package storage

import (
	"time"
)

// ShipmentRecord is the persisted shipment row. ParcelNumber is nullable
// so the unique index only bites once a number is assigned.
type ShipmentRecord struct {
	ID            string    `gorm:"column:shipment_id;primaryKey;type:varchar(50)"`
	State         string    `gorm:"column:state;type:varchar(20)"`
	CarrierMethod string    `gorm:"column:carrier_method;type:varchar(20)"`
	ServiceType   string    `gorm:"column:service_type;type:varchar(40)"`
	DepotNumber   string    `gorm:"column:depot_number;type:varchar(2)"`
	EffectiveDate time.Time `gorm:"column:effective_date"`

	CustomerName string `gorm:"column:customer_name"`
	CustomerID   string `gorm:"column:customer_id;type:varchar(50)"`
	CustomerCode string `gorm:"column:customer_code;type:varchar(50)"`
	CompanyName  string `gorm:"column:company_name"`

	DeliveryName    string `gorm:"column:delivery_name"`
	DeliveryName2   string `gorm:"column:delivery_name2"`
	DeliveryStreet  string `gorm:"column:delivery_street"`
	DeliveryCity    string `gorm:"column:delivery_city"`
	DeliveryZip     string `gorm:"column:delivery_zip;type:varchar(20)"`
	DeliveryCountry string `gorm:"column:delivery_country;type:varchar(2)"`

	WarehouseName    string `gorm:"column:warehouse_name"`
	WarehouseName2   string `gorm:"column:warehouse_name2"`
	WarehouseStreet  string `gorm:"column:warehouse_street"`
	WarehouseCity    string `gorm:"column:warehouse_city"`
	WarehouseZip     string `gorm:"column:warehouse_zip;type:varchar(20)"`
	WarehouseCountry string `gorm:"column:warehouse_country;type:varchar(2)"`

	Weight         float64 `gorm:"column:weight"`
	ParcelNumber   *string `gorm:"column:parcel_number;type:varchar(12);uniqueIndex"`
	TrackingNumber string  `gorm:"column:tracking_number;type:varchar(50)"`
	LabelStatus    string  `gorm:"column:label_status;type:varchar(20);default:'not_labeled'"`

	Packages []PackageRecord `gorm:"foreignKey:ShipmentID"`
}

func (ShipmentRecord) TableName() string { return "shipments" }

// PackageRecord is one parcel row of a shipment.
type PackageRecord struct {
	ID             string  `gorm:"column:package_id;primaryKey;type:varchar(50)"`
	ShipmentID     string  `gorm:"column:shipment_id;type:varchar(50);index"`
	Code           string  `gorm:"column:code;type:varchar(50)"`
	Weight         float64 `gorm:"column:weight"`
	ParcelNumber   *string `gorm:"column:parcel_number;type:varchar(12);uniqueIndex"`
	TrackingNumber string  `gorm:"column:tracking_number;type:varchar(50)"`
}

func (PackageRecord) TableName() string { return "packages" }

// ParcelClaimRecord is the global parcel-number namespace. Shipment and
// package saves both insert here, so a number can never exist twice across
// the two tables.
type ParcelClaimRecord struct {
	Number  string `gorm:"column:parcel_number;primaryKey;type:varchar(12)"`
	OwnerID string `gorm:"column:owner_id;type:varchar(60)"`
}

func (ParcelClaimRecord) TableName() string { return "parcel_numbers" }

// AttachmentRecord stores a rendered label artifact. Data is the Latin-1
// byte sequence exactly as rendered; it is never re-encoded.
type AttachmentRecord struct {
	ID         string    `gorm:"column:attachment_id;primaryKey;type:varchar(50)"`
	Name       string    `gorm:"column:name;uniqueIndex"`
	ShipmentID string    `gorm:"column:shipment_id;type:varchar(50);index"`
	Data       []byte    `gorm:"column:data;type:bytea"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (AttachmentRecord) TableName() string { return "label_attachments" }
